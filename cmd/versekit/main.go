// Command versekit is the CLI tool for managing devotional verse
// collections: scaffolding index pages, reporting content status,
// generating Puranic context annotations, indexing source episodes,
// and exporting collection archives.
package main

import (
	gocontext "context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"versekit/core/archive"
	verseContext "versekit/core/context"
	"versekit/core/project"
	"versekit/core/scaffold"
	"versekit/core/sources"
	"versekit/core/status"
	"versekit/internal/logging"
)

const version = "0.2.0"

// CLI defines the command-line interface for versekit.
var CLI struct {
	// Global flags
	ProjectDir string `name:"project-dir" short:"C" default:"." help:"Project root directory" type:"path"`
	LogLevel   string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat  string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	// Command groups (noun-first organization)
	Collection CollectionGroup `cmd:"" help:"Collection operations (init, status, export)"`
	Context    ContextGroup    `cmd:"" help:"Puranic context annotations"`
	Sources    SourcesGroup    `cmd:"" help:"Source-text episode index"`
	Version    VersionCmd      `cmd:"" help:"Print version information"`
}

// CollectionGroup contains collection lifecycle operations.
type CollectionGroup struct {
	Init   InitCmd   `cmd:"" help:"Scaffold index.html and full-text.html for a collection"`
	Status StatusCmd `cmd:"" help:"Report content completeness for collections"`
	Export ExportCmd `cmd:"" help:"Export a collection as a tar.xz archive"`
}

// ContextGroup contains annotation operations.
type ContextGroup struct {
	Generate GenerateCmd `cmd:"" help:"Generate Puranic context entries for verse files"`
}

// SourcesGroup contains source index operations.
type SourcesGroup struct {
	Index IndexCmd `cmd:"" help:"Index source-text episodes from a YAML file"`
}

// InitCmd scaffolds collection pages.
type InitCmd struct {
	Collection string `name:"collection" help:"Collection key from _data/collections.yml"`
	All        bool   `name:"all" help:"Scaffold all enabled collections"`
	Overwrite  bool   `name:"overwrite" help:"Overwrite existing output files"`
}

func (c *InitCmd) Run() error {
	if c.Collection == "" && !c.All {
		return fmt.Errorf("specify --collection KEY or --all")
	}
	if c.All {
		results, err := scaffold.All(CLI.ProjectDir, c.Overwrite)
		if err != nil {
			return err
		}
		for _, res := range results {
			printScaffoldResult(res)
		}
		fmt.Printf("Scaffolded %d collection(s)\n", len(results))
		return nil
	}
	res, err := scaffold.Collection(CLI.ProjectDir, c.Collection, c.Overwrite)
	if err != nil {
		return err
	}
	printScaffoldResult(res)
	return nil
}

func printScaffoldResult(res scaffold.Result) {
	report := func(path string, written bool) {
		if written {
			fmt.Printf("  ✓ Wrote %s (%d section(s), %d verse(s))\n", path, res.Sections, res.Verses)
		} else {
			fmt.Printf("  ⚠ Skipped %s (already exists, use --overwrite to regenerate)\n", path)
		}
	}
	report(res.IndexPath, res.IndexWritten)
	report(res.FullTextPath, res.FullWritten)
}

// StatusCmd reports content completeness.
type StatusCmd struct {
	Collection string `name:"collection" help:"Collection key to check"`
	All        bool   `name:"all" help:"Check all enabled collections"`
	Detailed   bool   `name:"detailed" help:"Show verse-by-verse breakdown"`
	JSON       bool   `name:"json" help:"Emit JSON for scripting"`
	Out        string `name:"out" help:"Write the JSON report to a file" type:"path"`
}

func (c *StatusCmd) Run() error {
	if c.Collection == "" && !c.All {
		return fmt.Errorf("specify --collection KEY or --all")
	}
	collections, err := project.LoadCollections(CLI.ProjectDir)
	if err != nil {
		return err
	}

	var keys []string
	if c.All {
		keys = project.EnabledKeys(collections)
	} else {
		keys = []string{c.Collection}
	}

	report := status.Report{Embeddings: status.CheckEmbeddings(CLI.ProjectDir)}
	for _, key := range keys {
		cs, err := status.AnalyzeCollection(CLI.ProjectDir, key, collections[key])
		if err != nil {
			return err
		}
		report.Collections = append(report.Collections, cs)
	}

	if c.Out != "" {
		if err := status.WriteReport(c.Out, report); err != nil {
			return err
		}
		fmt.Printf("  ✓ Wrote status report to %s\n", c.Out)
		return nil
	}
	if c.JSON {
		out, err := status.RenderJSON(report)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Print(status.RenderText(report, c.Detailed))
	return nil
}

// ExportCmd packs a collection into a tar.xz archive.
type ExportCmd struct {
	Collection string `name:"collection" required:"" help:"Collection key to export"`
	Out        string `name:"out" help:"Output archive path (default: <key>.tar.xz)" type:"path"`
}

func (c *ExportCmd) Run() error {
	config, err := project.LoadCollection(CLI.ProjectDir, c.Collection)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = c.Collection + ".tar.xz"
	}
	manifest, err := archive.Export(CLI.ProjectDir, c.Collection, config, out)
	if err != nil {
		return err
	}
	if err := archive.Verify(out); err != nil {
		return err
	}
	fmt.Printf("  ✓ Exported %s (%d file(s)) to %s\n", c.Collection, len(manifest.Entries), out)
	return nil
}

// GenerateCmd generates Puranic context annotations.
type GenerateCmd struct {
	Collection string `name:"collection" required:"" help:"Collection key"`
	Verse      string `name:"verse" help:"Verse ID to process (e.g., chaupai-15)"`
	All        bool   `name:"all" help:"Process all verses in the collection"`
	Regenerate bool   `name:"regenerate" help:"Overwrite existing puranic_context entries"`
	Model      string `name:"model" default:"gemini-2.0-flash" help:"Model to use"`
}

func (c *GenerateCmd) Run() error {
	if c.Verse == "" && !c.All {
		return fmt.Errorf("specify --verse ID or --all")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	config, err := project.LoadCollection(CLI.ProjectDir, c.Collection)
	if err != nil {
		return err
	}
	versesDir := config.VersesDir(CLI.ProjectDir, c.Collection)

	var verseIDs []string
	if c.All {
		verseIDs, err = project.ListVerseIDs(CLI.ProjectDir, c.Collection, config)
		if err != nil {
			return err
		}
		if len(verseIDs) == 0 {
			return fmt.Errorf("no verse files found in %s", versesDir)
		}
	} else {
		verseIDs = []string{c.Verse}
	}

	ctx := gocontext.Background()
	gen, err := verseContext.NewGenAIGenerator(ctx, apiKey, c.Model)
	if err != nil {
		return err
	}

	// Citations into scriptures absent from the index get rejected.
	var sourceNames []string
	if store, err := sources.Open(sources.DefaultPath(CLI.ProjectDir)); err == nil {
		sourceNames, _ = store.SourceNames()
		store.Close()
	}

	counts := map[verseContext.Action]int{}
	errorCount := 0
	for _, id := range verseIDs {
		path := filepath.Join(versesDir, id+".md")
		action, err := verseContext.ProcessVerse(ctx, path, gen, c.Regenerate, sourceNames)
		if err != nil {
			logging.GenerationError(c.Collection, id, err)
			errorCount++
			continue
		}
		counts[action]++
		fmt.Printf("  %s %s: %s\n", actionMark(action), id, action)
	}

	fmt.Println()
	fmt.Printf("Added: %d  Updated: %d  Skipped: %d  No content: %d  Errors: %d\n",
		counts[verseContext.ActionAdded], counts[verseContext.ActionRegenerated],
		counts[verseContext.ActionSkipped], counts[verseContext.ActionEmpty], errorCount)
	if errorCount == len(verseIDs) {
		return fmt.Errorf("all %d verse(s) failed", errorCount)
	}
	return nil
}

func actionMark(action verseContext.Action) string {
	switch action {
	case verseContext.ActionAdded, verseContext.ActionRegenerated:
		return "✓"
	case verseContext.ActionEmpty:
		return "○"
	default:
		return "⊘"
	}
}

// IndexCmd ingests source-text episodes into the SQLite index.
type IndexCmd struct {
	File string `name:"file" required:"" help:"YAML file of episodes" type:"existingfile"`
	Name string `name:"name" required:"" help:"Scripture name (e.g., 'Shiv Puran')"`
}

func (c *IndexCmd) Run() error {
	store, err := sources.Open(sources.DefaultPath(CLI.ProjectDir))
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := sources.IndexFile(store, c.File, c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ Indexed %d episode(s) from %s under '%s' (%s driver)\n",
		n, c.File, c.Name, sources.DriverType())
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("versekit version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("versekit"),
		kong.Description("Devotional verse collection toolchain"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
