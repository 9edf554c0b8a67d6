package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"notebook/framework/templgen"
)

type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errors.New("value cannot be empty")
	}
	*m = append(*m, trimmed)
	return nil
}

func main() {
	var paths multiFlag
	var basePath string
	var check bool

	flag.Var(&paths, "path", "templ file or directory to scan for .templ files (repeatable)")
	flag.StringVar(&basePath, "base", ".", "base path for relative filenames embedded in generated output")
	flag.BoolVar(&check, "check", false, "fail when generated output is stale instead of writing it")
	flag.Parse()

	result, err := templgen.Run(templgen.Config{
		Paths:    paths,
		BasePath: basePath,
		Check:    check,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "templgen: %v\n", err)
		os.Exit(1)
	}
	for _, written := range result.Written {
		_, _ = fmt.Fprintf(os.Stdout, "templgen: wrote %s\n", written)
	}
}
