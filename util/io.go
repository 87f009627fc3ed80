package util

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

type _CSVField struct {
	index int
	col   int
	kind  reflect.Kind
}

func _CSVFields(typ reflect.Type, header []string) List[_CSVField] {
	name_col_mapping := NewDict[string, int](len(header))
	for i, name := range header {
		name_col_mapping[name] = i
	}
	num_field := typ.NumField()
	fields := NewList[_CSVField](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("csv")
		if tag == "" {
			continue
		}
		if !name_col_mapping.ContainsKey(tag) {
			continue
		}
		col := name_col_mapping[tag]
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(_CSVField{i, col, reflect.Bool})
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(_CSVField{i, col, reflect.Int})
		case reflect.Float32, reflect.Float64:
			fields.Add(_CSVField{i, col, reflect.Float64})
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(_CSVField{i, col, reflect.Uint})
		case reflect.String:
			fields.Add(_CSVField{i, col, reflect.String})
		}
	}
	return fields
}

// Iterates over the rows of a csv table, fields of T are mapped to columns by their "csv" tag.
//
// Malformed rows and unparsable values are skipped, empty values leave the field at its zero value.
func ReadCSV[T any](reader io.Reader, delimiter rune) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		r := csv.NewReader(reader)
		r.Comma = delimiter
		header, err := r.Read()
		if err != nil {
			return
		}

		var val T
		typ := reflect.TypeOf(val)
		fields := _CSVFields(typ, header)
		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				continue
			}
			t := reflect.New(typ).Elem()
			for _, field := range fields {
				value := record[field.col]
				if value == "" {
					continue
				}
				f := t.Field(field.index)
				switch field.kind {
				case reflect.Bool:
					num, _ := strconv.ParseBool(value)
					f.SetBool(num)
				case reflect.Int:
					num, _ := strconv.ParseInt(value, 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					num, _ := strconv.ParseUint(value, 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					num, _ := strconv.ParseFloat(value, 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			if !yield(t.Interface().(T)) {
				break
			}
		}
	}
}

// Reads all rows of a csv file.
func ReadCSVFromFile[T any](filename string, delimiter rune) (List[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open file '%s'", filename)
	}
	defer file.Close()

	rows := NewList[T](100)
	for row := range ReadCSV[T](file, delimiter) {
		rows.Add(row)
	}
	return rows, nil
}

// Writes rows as a csv table, columns are the "csv" tags of T in field order.
func WriteCSV[T any](writer io.Writer, rows []T, delimiter rune) error {
	var val T
	typ := reflect.TypeOf(val)
	header := NewList[string](typ.NumField())
	indices := NewList[int](typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("csv")
		if tag == "" {
			continue
		}
		header.Add(tag)
		indices.Add(i)
	}

	w := csv.NewWriter(writer)
	w.Comma = delimiter
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "Can't write csv header")
	}
	record := make([]string, len(indices))
	for _, row := range rows {
		v := reflect.ValueOf(row)
		for j, index := range indices {
			f := v.Field(index)
			switch f.Kind() {
			case reflect.Float32:
				record[j] = strconv.FormatFloat(f.Float(), 'f', -1, 32)
			case reflect.Float64:
				record[j] = strconv.FormatFloat(f.Float(), 'f', -1, 64)
			default:
				record[j] = fmt.Sprint(f.Interface())
			}
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "Can't write csv row")
		}
	}
	w.Flush()
	return w.Error()
}

func WriteCSVToFile[T any](rows []T, filename string, delimiter rune) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't create file '%s'", filename)
	}
	defer file.Close()
	return WriteCSV(file, rows, delimiter)
}

func WriteJSONToFile[T any](value T, filename string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "Can't marshal value")
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrapf(err, "Can't write file '%s'", filename)
	}
	return nil
}
