package routing

import (
	"sync"

	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
	"golang.org/x/sync/singleflight"
)

//*******************************************
// encoding cache
//*******************************************

// Shares one AdjacencyNetwork per key between callers.
//
// Concurrent requests for a missing key build the encoding only once.
type EncodingCache struct {
	group     singleflight.Group
	mu        sync.RWMutex
	encodings Dict[string, *AdjacencyNetwork]
}

func NewEncodingCache() *EncodingCache {
	return &EncodingCache{
		encodings: NewDict[string, *AdjacencyNetwork](4),
	}
}

// Returns the encoding stored under key, building it from the evaluators if missing.
func (self *EncodingCache) Get(key string, network *graph.Network, edge_eval weighting.IEdgeEvaluator, trav_eval weighting.ITraversalEvaluator) (*AdjacencyNetwork, error) {
	self.mu.RLock()
	enc, ok := self.encodings[key]
	self.mu.RUnlock()
	if ok {
		return enc, nil
	}

	value, err, _ := self.group.Do(key, func() (interface{}, error) {
		self.mu.RLock()
		enc, ok := self.encodings[key]
		self.mu.RUnlock()
		if ok {
			return enc, nil
		}
		enc, err := NewAdjacencyNetwork(network, edge_eval, trav_eval)
		if err != nil {
			return nil, err
		}
		self.mu.Lock()
		self.encodings[key] = enc
		self.mu.Unlock()
		return enc, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*AdjacencyNetwork), nil
}

func (self *EncodingCache) Length() int {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return self.encodings.Length()
}
