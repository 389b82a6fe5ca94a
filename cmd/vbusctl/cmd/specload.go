// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/resol-go/vbus/spec"
)

// loadSpecification reads the specification blob at path and parses the
// --language flag, returning a ready-to-query Specification. An empty path
// yields a Specification with no templates loaded: every Packet then
// resolves to an "unknown device"/fieldless PacketSpec rather than erroring,
// since running without a specification blob is a supported mode (§11).
func loadSpecification(path, language string) (*spec.Specification, error) {
	lang, err := parseLanguage(language)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return spec.NewSpecification(&spec.File{}, lang), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading specification file %s: %w", path, err)
	}
	file, err := spec.ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parsing specification file %s: %w", path, err)
	}
	return spec.NewSpecification(file, lang), nil
}

func parseLanguage(language string) (spec.Language, error) {
	switch language {
	case "", "en":
		return spec.English, nil
	case "de":
		return spec.German, nil
	case "fr":
		return spec.French, nil
	default:
		return 0, fmt.Errorf("unknown --language %q (want en, de, or fr)", language)
	}
}
