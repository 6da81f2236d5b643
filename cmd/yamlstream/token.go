// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Token output for the yamlstream tool.

package main

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yamlstream"
)

// ProcessTokens reads YAML from reader and writes one record per token.
func ProcessTokens(reader io.Reader, w io.Writer, profuse, compact bool) error {
	scanner := yamlstream.NewScanner(reader)
	out, err := newRecordWriter(w, compact)
	if err != nil {
		return err
	}
	for {
		var token yamlstream.Token
		err := scanner.Scan(&token)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to scan YAML: %w", err)
		}
		if err := out.write(tokenRecord(&token, profuse)); err != nil {
			return err
		}
	}
	return out.close()
}

// tokenName turns SCALAR_TOKEN into SCALAR and BLOCK_END_TOKEN into BLOCK-END.
func tokenName(t yamlstream.TokenType) string {
	return strings.ReplaceAll(strings.TrimSuffix(t.String(), "_TOKEN"), "_", "-")
}

func tokenRecord(token *yamlstream.Token, profuse bool) record {
	r := record{{"token", tokenName(token.Type)}}
	switch token.Type {
	case yamlstream.AliasToken, yamlstream.AnchorToken:
		r = r.add("value", token.Value)
	case yamlstream.TagToken:
		r = r.add("value", token.Value+token.Suffix)
	case yamlstream.TagDirectiveToken:
		r = r.add("value", token.Value+" "+token.Prefix)
	case yamlstream.VersionDirectiveToken:
		r = r.add("value", fmt.Sprintf("%d.%d", token.Major, token.Minor))
	case yamlstream.ScalarToken:
		r = r.add("value", token.Value)
		if profuse || token.Style != yamlstream.PlainStyle {
			r = r.add("style", token.Style.String())
		}
	}
	if profuse {
		r = r.add("pos", formatPos(token.StartMark, token.EndMark))
	}
	return r
}
