package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	. "github.com/ttpr0/go-routechoice/util"
)

// Parses a comma separated list of node ids, "all" or "" yields the fallback.
func ParseNodeList(value string, fallback Array[int32]) (Array[int32], error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "all" {
		return fallback, nil
	}
	tokens := strings.Split(value, ",")
	ids := NewList[int32](len(tokens))
	for _, token := range tokens {
		id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid node id '%s'", token)
		}
		ids.Add(int32(id))
	}
	return Array[int32](ids), nil
}
