// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/core/tree"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestBuildScene(t *testing.T) {
	sc := buildScene(sceneOptions{size: 3, transparent: 0.5})
	assert.Equal(t, 10, sc.NumChildren())
	assert.Equal(t, 1+1+9*4, tree.Count(sc))
}

func TestRenderCommand(t *testing.T) {
	out := run(t, "render", "--size", "3", "--frames", "4", "--caching", "on", "--transparent", "0", "--metrics")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "9 shapes drawn, 0 call lists")
	assert.Contains(t, lines[1], "9 shapes drawn, 9 call lists")
	assert.Contains(t, out, "scenekit_cache_render_hits_total 27")
}

func TestRenderCommandErrors(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--transparency", "bogus"})
	assert.Error(t, cmd.Execute())
}

func TestPrintCommand(t *testing.T) {
	out := run(t, "print", "--size", "1")
	assert.True(t, strings.HasPrefix(out, "Separator \"root\""), out)
	assert.Contains(t, out, "Camera \"camera\"")
	assert.Contains(t, out, "Cube")

	out = run(t, "print", "--find", "camera")
	assert.Contains(t, out, "[BelowPath]")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"print", "--find", "camra"})
	assert.ErrorContains(t, cmd.Execute(), `did you mean "camera"?`)
}

func TestCommandArgs(t *testing.T) {
	args, err := commandArgs([]string{"render"}, `--size 2 --config "my settings.toml"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"render", "--size", "2", "--config", "my settings.toml"}, args)

	args, err = commandArgs([]string{"print"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"print"}, args)

	_, err = commandArgs(nil, `--config "unterminated`)
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.toml")
	out := run(t, "config", file)
	assert.Contains(t, out, "wrote")
	run(t, "--config", file, "render", "--size", "1", "--frames", "1")
}
