package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

type Options struct {
	Level logrus.Level
	// File, when set, receives every entry at Level or above through a
	// rotating file sink in addition to Output.
	File        string
	Output      io.Writer
	ForceColors bool
}

const (
	maxFileSizeMB  = 10
	maxFileBackups = 5
	maxFileAgeDays = 28
)

func New(opts Options) (*logrus.Logger, error) {
	log := logrus.New()
	if err := Setup(log, opts); err != nil {
		return nil, err
	}
	return log, nil
}

// Setup reconfigures an existing logger, e.g. a package level one.
func Setup(log *logrus.Logger, opts Options) error {
	log.SetLevel(opts.Level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: opts.ForceColors})
	if opts.Output != nil {
		log.SetOutput(opts.Output)
	}

	if opts.File == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   opts.File,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxFileBackups,
		MaxAge:     maxFileAgeDays,
		Level:      opts.Level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to create log file hook: %w", err)
	}
	log.AddHook(hook)
	return nil
}
