// Package topics extends a Cobra CLI with file-backed help topics, so
// long-form documentation (config format, block semantics) lives in markdown
// next to the code and renders nicely in the terminal.
package topics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help page, named after its file without the extension.
type Topic struct {
	Name    string
	Format  string // file extension, drives rendering
	Content string
}

// TopicManager loads topics from a filesystem (typically an embed.FS) and
// wires them into a root command's help.
type TopicManager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	renderer     Renderer
}

// Options configures the TopicManager.
type Options struct {
	// Renderer formats topic content for the terminal.
	// Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a TopicManager and loads every .md and .txt file under root in
// fsys as a topic.
func New(fsys fs.FS, root string, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:   make(map[string]*Topic),
		renderer: opts.Renderer,
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), ext)
		tm.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return tm, nil
}

// Get retrieves a topic by name.
func (tm *TopicManager) Get(name string) (*Topic, bool) {
	topic, ok := tm.topics[strings.TrimPrefix(name, "--")]
	return topic, ok
}

// List returns all topic names, sorted.
func (tm *TopicManager) List() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attach replaces the root command's help command with one that also serves
// topics. `<app> help topics` lists them; `<app> help <topic>` renders one.
func (tm *TopicManager) Attach(rootCmd *cobra.Command) {
	tm.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.List()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}
			if args[0] == "topics" {
				names := tm.List()
				if len(names) == 0 {
					cmd.Println("No help topics available.")
					return
				}
				cmd.Println("Available help topics:")
				for _, name := range names {
					cmd.Printf("  %s\n", name)
				}
				cmd.Printf("\nUse '%s help <topic>' to read about a specific topic.\n", rootCmd.Name())
				return
			}
			if topic, ok := tm.Get(args[0]); ok {
				cmd.Print(tm.renderer.Render(topic.Content, topic.Format))
				return
			}
			tm.originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)
}
