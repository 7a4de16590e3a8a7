package model

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures. Config and source errors abort the run;
// the rest are isolated to the memo that raised them.
var (
	ErrTagConfig        = goerr.NewTag("config")
	ErrTagSource        = goerr.NewTag("source")
	ErrTagTranscription = goerr.NewTag("transcription")
	ErrTagSummarization = goerr.NewTag("summarization")
	ErrTagWrite         = goerr.NewTag("write")
)
