package pipeline

import (
	"runtime"

	"wordbreak/document"
	"wordbreak/tokenize"
)

// Options configures a Processor.
type Options struct {
	// Dictionary and Mode select the kagome dictionary and segmentation
	// mode; see tokenize.New.
	Dictionary string `json:"dictionary"`
	Mode       string `json:"mode"`
	// Workers bounds how many runs are chunked at once. Values below 1
	// mean one worker per CPU.
	Workers int `json:"workers"`
	// Exclude lists tags skipped in addition to document.DefaultExclude.
	Exclude []string `json:"exclude,omitempty"`
	// Marker is the class of the generated style block.
	Marker string `json:"marker"`
	// KeepRuns records every chunked run in the Report.
	KeepRuns bool `json:"keep_runs"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Dictionary: tokenize.IPA,
		Mode:       tokenize.Normal,
		Workers:    runtime.NumCPU(),
		Marker:     document.DefaultMarker,
	}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.NumCPU()
	}
	return o.Workers
}
