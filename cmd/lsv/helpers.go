package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/lsv/pkg/config"
	"github.com/charlie0129/lsv/pkg/lsv"
)

// dirArg returns the dataset directory argument, defaulting to the working
// directory.
func dirArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return ".", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("invalid number of arguments")
	}
}

func resolveConfigPath(dir string) string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(dir, config.DefaultFileName)
}

func loadConfig(dir string) (*config.File, error) {
	path := resolveConfigPath(dir)
	conf, err := config.NewFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logrus.WithFields(conf.LogrusFields()).WithField("path", path).Debug("config loaded")
	return conf, nil
}

func newAnalyzer(dir string) (*lsv.Analyzer, error) {
	conf, err := loadConfig(dir)
	if err != nil {
		return nil, err
	}
	a, err := lsv.NewAnalyzer(conf.Params())
	if err != nil {
		return nil, fmt.Errorf("invalid analysis parameters: %w", err)
	}
	return a, nil
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func warn(format string, a ...interface{}) string {
	return color.New(color.FgYellow).Sprintf(format, a...)
}
