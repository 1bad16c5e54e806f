package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deckmerge/internal/skilldata"
)

// serverName is the key deckmerge registers under in .mcp.json.
const serverName = "deckmerge"

// serverEntry is the .mcp.json registration that launches "deckmerge serve"
// over stdio.
type serverEntry struct {
	Type    string   `json:"type"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func newInitCmd() *cobra.Command {
	inst := &installer{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the deckmerge skill and register the MCP server in .mcp.json",
		Long: `Install the deckmerge skill under .claude/skills/deckmerge and register
"deckmerge serve" as a stdio MCP server in the project's .mcp.json. Files and
entries that already exist are kept unless --force is given.`,
		Args: cobra.NoArgs,
		// init works without a project config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst.out = cmd.OutOrStdout()
			return inst.run()
		},
	}
	cmd.Flags().StringVar(&inst.root, "project-root", ".", "path to the target project")
	cmd.Flags().BoolVar(&inst.force, "force", false, "replace existing skill files and the .mcp.json entry")
	return cmd
}

// installer sets up a project to use deckmerge as an MCP server.
type installer struct {
	out   io.Writer
	root  string
	force bool
}

func (in *installer) run() error {
	root, err := filepath.Abs(in.root)
	if err != nil {
		return fmt.Errorf("project root: %w", err)
	}
	in.root = root

	if err := in.installSkill(); err != nil {
		return fmt.Errorf("install skill: %w", err)
	}
	if err := in.registerServer(); err != nil {
		return fmt.Errorf("register server: %w", err)
	}
	fmt.Fprintln(in.out, "\nRestart your MCP client to pick up the deckmerge tools.")
	return nil
}

// installSkill copies the embedded skill tree into .claude/skills/deckmerge.
func (in *installer) installSkill() error {
	skill, err := fs.Sub(skilldata.SkillFS, skilldata.Root)
	if err != nil {
		return err
	}
	dir := filepath.Join(in.root, ".claude", "skills", serverName)

	return fs.WalkDir(skill, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		if in.exists(dest) && !in.force {
			in.report("kept", dest, "already present; --force replaces it")
			return nil
		}
		data, err := fs.ReadFile(skill, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
		in.report("wrote", dest, "")
		return nil
	})
}

// registerServer adds the deckmerge entry to .mcp.json. Other servers and
// unrelated top-level keys survive the rewrite.
func (in *installer) registerServer() error {
	path := filepath.Join(in.root, ".mcp.json")

	doc := map[string]json.RawMessage{}
	servers := map[string]json.RawMessage{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if raw, ok := doc["mcpServers"]; ok {
			if err := json.Unmarshal(raw, &servers); err != nil {
				return fmt.Errorf("parse mcpServers in %s: %w", path, err)
			}
		}
	}

	if _, ok := servers[serverName]; ok && !in.force {
		in.report("kept", path, "deckmerge entry already present; --force replaces it")
		return nil
	}

	entry, err := json.Marshal(serverEntry{Type: "stdio", Command: serverName, Args: []string{"serve"}})
	if err != nil {
		return err
	}
	servers[serverName] = entry
	if doc["mcpServers"], err = json.Marshal(servers); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return err
	}
	in.report("registered deckmerge in", path, "")
	return nil
}

func (in *installer) exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// report prints one action line with path shown relative to the project root.
func (in *installer) report(action, path, note string) {
	if rel, err := filepath.Rel(in.root, path); err == nil {
		path = filepath.ToSlash(rel)
	}
	if note != "" {
		fmt.Fprintf(in.out, "  %s %s (%s)\n", action, path, note)
		return
	}
	fmt.Fprintf(in.out, "  %s %s\n", action, path)
}
