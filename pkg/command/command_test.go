// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	teemuerrors "github.com/tombee/teemu/pkg/errors"
	"github.com/tombee/teemu/pkg/output"
)

type call struct {
	cmd   *Command
	args  []string
	flags []string
}

func recorder(calls *[]call) HandlerFunc {
	return func(_ context.Context, cmd *Command, args, flags []string) error {
		*calls = append(*calls, call{cmd: cmd, args: args, flags: flags})
		return nil
	}
}

func newGit(t *testing.T) (*Command, *output.Buffer) {
	t.Helper()
	buf := &output.Buffer{}
	reg := NewRegistry(buf)
	git, err := reg.Register(CommandSpec{Name: "git"})
	require.NoError(t, err)
	return git, buf
}

func TestAddSubcommand_ValidationOrder(t *testing.T) {
	noop := func(context.Context, *Command, []string, []string) error { return nil }

	tests := []struct {
		name      string
		flat      bool
		spec      SubcommandSpec
		wantType  string
		wantField string
	}{
		{
			name:     "flat command wins over everything",
			flat:     true,
			spec:     SubcommandSpec{Name: "", Handler: nil, Flags: NewFlagMap(Flag{Name: "x"})},
			wantType: "flat_command",
		},
		{
			name:      "empty name before missing handler",
			spec:      SubcommandSpec{Name: "", Handler: nil},
			wantType:  "validation",
			wantField: "name",
		},
		{
			name:      "name with whitespace",
			spec:      SubcommandSpec{Name: "two words", Handler: noop},
			wantType:  "validation",
			wantField: "name",
		},
		{
			name:      "missing handler before flag checks",
			spec:      SubcommandSpec{Name: "commit", Flags: NewFlagMap(Flag{Name: "bad"})},
			wantType:  "validation",
			wantField: "fx",
		},
		{
			name:     "syntax before reserved",
			spec:     SubcommandSpec{Name: "commit", Handler: noop, Flags: NewFlagMap(Flag{Name: "-h"}, Flag{Name: "m"})},
			wantType: "flag_syntax",
		},
		{
			name:     "reserved short",
			spec:     SubcommandSpec{Name: "commit", Handler: noop, Flags: NewFlagMap(Flag{Name: "-m"}, Flag{Name: "-h"})},
			wantType: "reserved_flag",
		},
		{
			name:     "reserved long",
			spec:     SubcommandSpec{Name: "commit", Handler: noop, Flags: NewFlagMap(Flag{Name: "--help"})},
			wantType: "reserved_flag",
		},
		{
			name:     "triple hyphen",
			spec:     SubcommandSpec{Name: "commit", Handler: noop, Flags: NewFlagMap(Flag{Name: "---m"})},
			wantType: "flag_syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(nil)
			cmd, err := reg.Register(CommandSpec{Name: "c", Flat: tt.flat})
			require.NoError(t, err)

			err = cmd.AddSubcommand(tt.spec)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, teemuerrors.Classify(err))

			if tt.wantField != "" {
				var verr *teemuerrors.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantField, verr.Field)
			}
			assert.Empty(t, cmd.SubcommandNames(), "failed registration must not mutate")
		})
	}
}

func TestAddSubcommand_RawFlags(t *testing.T) {
	git, _ := newGit(t)
	noop := func(context.Context, *Command, []string, []string) error { return nil }

	var seq yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("[-m, --amend]"), &seq))
	err := git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: noop, RawFlags: &seq})
	var verr *teemuerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "flags", verr.Field)

	var mapping yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("-m: message\n--amend: amend\n"), &mapping))
	err = git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: noop, RawFlags: &mapping, Flags: NewFlagMap()})
	require.True(t, errors.As(err, &verr))

	require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: noop, RawFlags: &mapping}))
	sub, ok := git.Subcommand("commit")
	require.True(t, ok)
	assert.Equal(t, []Flag{{Name: "-m", Description: "message"}, {Name: "--amend", Description: "amend"}}, sub.Flags())
}

func TestAddSubcommand_Duplicate(t *testing.T) {
	git, _ := newGit(t)
	var first, second []call

	require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: recorder(&first)}))

	err := git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: recorder(&second)})
	var dup *teemuerrors.DuplicateSubcommandError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "git", dup.Command)
	assert.Equal(t, "commit", dup.Name)

	require.NoError(t, git.Invoke(context.Background(), "commit", nil, nil))
	assert.Len(t, first, 1, "original handler must stay in place")
	assert.Empty(t, second)

	require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: recorder(&second)}, Force()))
	require.NoError(t, git.Invoke(context.Background(), "commit", nil, nil))
	assert.Len(t, first, 1)
	assert.Len(t, second, 1, "forced registration replaces the handler")
}

func TestAddSubcommand_CopiesFlags(t *testing.T) {
	git, buf := newGit(t)
	flags := NewFlagMap(Flag{Name: "-m", Description: "message"})
	require.NoError(t, git.AddSubcommand(SubcommandSpec{
		Name:    "commit",
		Handler: recorder(&[]call{}),
		Flags:   flags,
	}))

	flags.Set("--later", "added after registration")

	require.NoError(t, git.Invoke(context.Background(), "commit", nil, []string{"-h"}))
	assert.NotContains(t, buf.String(), "--later")
}

func TestResolve(t *testing.T) {
	git, _ := newGit(t)
	require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: recorder(&[]call{})}))

	tests := []struct {
		name  string
		sub   string
		flags []string
		want  Route
	}{
		{"no subcommand", "", nil, RouteDefault},
		{"no subcommand with help", "", []string{"--help"}, RouteDefault},
		{"found", "commit", []string{"-m"}, RouteSubcommand},
		{"found with help", "commit", []string{"-m", "-h"}, RouteHelp},
		{"not found", "push", nil, RouteDefault},
		{"not found with help", "push", []string{"--help"}, RouteDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, git.Resolve(tt.sub, tt.flags))
		})
	}

	flatCmd := NewRegistry(nil).MustRegister(CommandSpec{Name: "clear", Flat: true})
	assert.Equal(t, RouteDefault, flatCmd.Resolve("commit", []string{"--help"}))
}

func TestInvoke_PassesOwningCommand(t *testing.T) {
	git, _ := newGit(t)
	var calls []call
	require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: "commit", Handler: recorder(&calls)}))

	require.NoError(t, git.Invoke(context.Background(), "commit", []string{"file.txt"}, []string{"-m"}))

	require.Len(t, calls, 1)
	assert.Same(t, git, calls[0].cmd)
	assert.Equal(t, []string{"file.txt"}, calls[0].args)
	assert.Equal(t, []string{"-m"}, calls[0].flags)
}

func TestInvoke_HelpSkipsHandler(t *testing.T) {
	git, buf := newGit(t)
	var calls []call
	require.NoError(t, git.AddSubcommand(SubcommandSpec{
		Name:        "commit",
		Handler:     recorder(&calls),
		Usage:       "git commit <file> [-m] [--amend]",
		Description: "Record changes",
		Flags: NewFlagMap(
			Flag{Name: "-m", Description: "commit message"},
			Flag{Name: "--amend", Description: "amend the previous commit"},
		),
	}))

	require.NoError(t, git.Invoke(context.Background(), "commit", nil, []string{"--help"}))

	assert.Empty(t, calls)
	assert.Equal(t, 1, buf.Calls())
	assert.Equal(t, []string{
		"Usage: git commit <file> [-m] [--amend]",
		"Record changes",
		"------------------------",
		"Available flags:",
		"-m                      commit message",
		"--amend                 amend the previous commit",
	}, buf.Lines())
}

func TestInvoke_DefaultHandler(t *testing.T) {
	t.Run("lists subcommands in registration order", func(t *testing.T) {
		git, buf := newGit(t)
		for _, name := range []string{"status", "commit", "add"} {
			require.NoError(t, git.AddSubcommand(SubcommandSpec{Name: name, Handler: recorder(&[]call{})}))
		}

		require.NoError(t, git.Invoke(context.Background(), "", nil, nil))
		assert.Equal(t, []string{"Available subcommands:", "status, commit, add"}, buf.Lines())
	})

	t.Run("unknown subcommand falls back to default", func(t *testing.T) {
		git, buf := newGit(t)
		require.NoError(t, git.Invoke(context.Background(), "push", nil, nil))
		assert.Equal(t, []string{"Available subcommands:", "(none)"}, buf.Lines())
	})

	t.Run("flat command says so", func(t *testing.T) {
		buf := &output.Buffer{}
		flatCmd := NewRegistry(buf).MustRegister(CommandSpec{Name: "clear", Flat: true})
		require.NoError(t, flatCmd.Invoke(context.Background(), "anything", nil, nil))
		assert.Equal(t, []string{"Command is flat; no subcommands attached"}, buf.Lines())
	})

	t.Run("custom default receives args and flags", func(t *testing.T) {
		var calls []call
		flatCmd := NewRegistry(nil).MustRegister(CommandSpec{Name: "clear", Flat: true, Default: recorder(&calls)})

		require.NoError(t, flatCmd.Invoke(context.Background(), "", nil, nil))
		require.Len(t, calls, 1)
		assert.NotNil(t, calls[0].args)
		assert.Empty(t, calls[0].args)
		assert.NotNil(t, calls[0].flags)
		assert.Empty(t, calls[0].flags)
	})
}

func TestInvoke_HandlerErrorPropagates(t *testing.T) {
	git, _ := newGit(t)
	boom := errors.New("boom")
	require.NoError(t, git.AddSubcommand(SubcommandSpec{
		Name: "fail",
		Handler: func(context.Context, *Command, []string, []string) error {
			return boom
		},
	}))

	err := git.Invoke(context.Background(), "fail", nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestHelpLines(t *testing.T) {
	git, _ := newGit(t)
	require.NoError(t, git.AddSubcommand(SubcommandSpec{
		Name:    "log",
		Handler: recorder(&[]call{}),
		Flags:   NewFlagMap(Flag{Name: "--a-very-long-flag-name-here", Description: "long"}),
	}))

	lines, ok := git.HelpLines("log")
	require.True(t, ok)
	assert.Equal(t, "Usage: git log", lines[0])
	assert.Equal(t, "--a-very-long-flag-name-here  long", lines[len(lines)-1])

	_, ok = git.HelpLines("missing")
	assert.False(t, ok)
}

func TestRouteString(t *testing.T) {
	assert.Equal(t, "default", RouteDefault.String())
	assert.Equal(t, "help", RouteHelp.String())
	assert.Equal(t, "subcommand", RouteSubcommand.String())
}
