package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/batched"
	"github.com/ttpr0/go-routechoice/pathchoice"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

var ErrConfig = errors.New("invalid config")

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

// Decodes a yaml config on top of the default values.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "Can't decode config")
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.Network.Source = SOURCE_CSV
	config.Network.Delimiter = ";"
	config.Routing.Algorithm = REPEATED
	config.Routing.Parallel = ParallelMethod(batched.QUEUE)
	config.Routing.MaxCost = 1000000
	config.Pathchoice.MaxDistance = 10
	config.Pathchoice.RandomSeeded = true
	config.Pathchoice.RandomScales = []float64{0, 0.5}
	config.Pathchoice.PathSizes = []float64{2}
	config.Pathchoice.CountMin = []int{2}
	config.Pathchoice.CountMax = []int{10}
	config.Pathchoice.Output = "./out/"
	config.Pathchoice.IntrazonalEstimate.Count = 1
	config.Pathchoice.IntrazonalEstimate.Factor = 0.5
	config.Server.Port = 5002
	return config
}

type Config struct {
	Network    NetworkOptions    `yaml:"network"`
	Routing    RoutingOptions    `yaml:"routing"`
	Pathchoice PathchoiceOptions `yaml:"pathchoice"`
	Server     struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

type NetworkOptions struct {
	Source     NetworkSource `yaml:"source"`
	Nodes      string        `yaml:"nodes"`
	Edges      string        `yaml:"edges"`
	Traversals string        `yaml:"traversals"`
	OSM        string        `yaml:"osm"`
	Delimiter  string        `yaml:"delimiter"`
}

type RoutingOptions struct {
	Algorithm  AlgorithmType  `yaml:"algorithm"`
	Parallel   ParallelMethod `yaml:"parallel"`
	MaxCost    float64        `yaml:"max-cost"`
	Intrazonal bool           `yaml:"intrazonal"`
	Workers    int            `yaml:"workers"`
}

type PathchoiceOptions struct {
	MaxDistance    float64   `yaml:"max-distance"`
	RandomSeeded   bool      `yaml:"random-seeded"`
	Seed           uint64    `yaml:"seed"`
	RandomScales   []float64 `yaml:"random-scales"`
	DistanceBreaks []float64 `yaml:"distance-breaks"`
	PathSizes      []float64 `yaml:"path-sizes"`
	CountMin       []int     `yaml:"count-min"`
	CountMax       []int     `yaml:"count-max"`
	Output         string    `yaml:"output"`
	TraceOrigins   []int32   `yaml:"trace-origins"`
	// distance of a zone to itself estimated from its nearest zones
	IntrazonalEstimate struct {
		Count  int     `yaml:"count"`
		Factor float64 `yaml:"factor"`
	} `yaml:"intrazonal-estimate"`
}

func (self Config) Validate() error {
	switch self.Network.Source {
	case SOURCE_CSV:
		if self.Network.Nodes == "" || self.Network.Edges == "" {
			return errors.Wrap(ErrConfig, "csv source needs nodes and edges files")
		}
		if len([]rune(self.Network.Delimiter)) != 1 {
			return errors.Wrapf(ErrConfig, "delimiter '%s' is not a single character", self.Network.Delimiter)
		}
	case SOURCE_OSM:
		if self.Network.OSM == "" {
			return errors.Wrap(ErrConfig, "osm source needs a pbf file")
		}
	}
	if self.Routing.MaxCost <= 0 {
		return errors.Wrapf(ErrConfig, "max-cost must be positive, got %f", self.Routing.MaxCost)
	}
	if self.Pathchoice.IntrazonalEstimate.Count < 0 {
		return errors.Wrapf(ErrConfig, "intrazonal-estimate count must not be negative, got %d", self.Pathchoice.IntrazonalEstimate.Count)
	}
	if err := self.GeneratorConfig().Validate(); err != nil {
		return errors.Wrap(ErrConfig, err.Error())
	}
	return nil
}

// Delimiter of the csv tables as a rune.
func (self NetworkOptions) DelimiterRune() rune {
	runes := []rune(self.Delimiter)
	if len(runes) == 0 {
		return ';'
	}
	return runes[0]
}

func (self Config) GeneratorConfig() pathchoice.GeneratorConfig {
	opts := self.Pathchoice
	return pathchoice.GeneratorConfig{
		DistanceBreaks: opts.DistanceBreaks,
		PathSizes:      opts.PathSizes,
		MinCounts:      opts.CountMin,
		MaxCounts:      opts.CountMax,
		RandomScales:   opts.RandomScales,
		RandomSeeded:   opts.RandomSeeded,
		Seed:           opts.Seed,
		MaxCost:        self.Routing.MaxCost,
		Intrazonal:     self.Routing.Intrazonal,
		TraceOrigins:   opts.TraceOrigins,
		OutputDir:      opts.Output,
		Workers:        self.Routing.Workers,
	}
}

//**********************************************************
// enums
//**********************************************************

type NetworkSource byte

const (
	SOURCE_CSV NetworkSource = 0
	SOURCE_OSM NetworkSource = 1
)

func (self NetworkSource) String() string {
	switch self {
	case SOURCE_CSV:
		return "csv"
	case SOURCE_OSM:
		return "osm"
	default:
		panic("unknown network source")
	}
}
func (self NetworkSource) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *NetworkSource) UnmarshalYAML(value *yaml.Node) error {
	typ, err := NetworkSourceFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func NetworkSourceFromString(s string) (NetworkSource, error) {
	switch s {
	case "csv":
		return SOURCE_CSV, nil
	case "osm":
		return SOURCE_OSM, nil
	default:
		return SOURCE_CSV, errors.Errorf("unknown network source '%s'", s)
	}
}

type AlgorithmType byte

const (
	// generic edge based dijkstra
	DIJKSTRA AlgorithmType = 0
	// dijkstra over the compact array encoding
	ARRAY AlgorithmType = 1
	// dijkstra reusing its buffers between origins
	REPEATED AlgorithmType = 2
)

func (self AlgorithmType) String() string {
	switch self {
	case DIJKSTRA:
		return "dijkstra"
	case ARRAY:
		return "array"
	case REPEATED:
		return "repeated"
	default:
		panic("unknown algorithm type")
	}
}
func (self AlgorithmType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *AlgorithmType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = AlgorithmTypeFromString(typ)
	return err
}
func (self AlgorithmType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *AlgorithmType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := AlgorithmTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func AlgorithmTypeFromString(s string) (AlgorithmType, error) {
	switch s {
	case "dijkstra":
		return DIJKSTRA, nil
	case "array":
		return ARRAY, nil
	case "repeated":
		return REPEATED, nil
	default:
		return DIJKSTRA, errors.Errorf("unknown algorithm type '%s'", s)
	}
}

// yaml form of batched.ParallelMethod
type ParallelMethod batched.ParallelMethod

func (self ParallelMethod) Value() batched.ParallelMethod {
	return batched.ParallelMethod(self)
}
func (self ParallelMethod) String() string {
	return self.Value().String()
}
func (self ParallelMethod) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *ParallelMethod) UnmarshalYAML(value *yaml.Node) error {
	method, ok := batched.ParallelMethodFromString(value.Value)
	if !ok {
		return errors.Errorf("unknown parallel method '%s'", value.Value)
	}
	*self = ParallelMethod(method)
	return nil
}
