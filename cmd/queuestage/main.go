// queuestage is a command-line viewer for capacity-scheduler queue
// configuration. It loads a snapshot (XML, .properties, or JSON), can
// stage a batch of edits from a YAML edit script, and prints the
// resolved effective hierarchy along with commit-ready payloads.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/dshills/queuestage/internal/render"
	"github.com/dshills/queuestage/internal/sched"
	"github.com/dshills/queuestage/internal/sched/catalog"
	"github.com/dshills/queuestage/internal/sched/loader"
	"github.com/dshills/queuestage/internal/sched/script"
	"github.com/dshills/queuestage/internal/sched/watcher"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var catalogPath string
	var noColor bool
	var asJSON bool
	var interval time.Duration

	flags := pflag.NewFlagSet("queuestage", pflag.ContinueOnError)
	flags.StringVar(&catalogPath, "catalog", "", "TOML file with extra property definitions")
	flags.BoolVar(&noColor, "no-color", false, "disable styled output")
	flags.BoolVar(&asJSON, "json", false, "print the hierarchy as JSON instead of a tree")
	flags.DurationVar(&interval, "interval", 2*time.Second, "poll interval for watch mode")
	flags.BoolP("help", "h", false, "show help")
	flags.Usage = func() { printUsage(flags) }

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("queuestage %s\n", version)
		return 0
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	args := flags.Args()
	if len(args) == 0 {
		printUsage(flags)
		return 2
	}

	cat := catalog.NewWithDefaults()
	if catalogPath != "" {
		if err := cat.LoadTOML(catalogPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}

	styles := render.AutoStyles()
	if noColor {
		styles = render.PlainStyles()
	}
	app := &app{
		catalog:  cat,
		renderer: render.New(styles),
		asJSON:   asJSON,
		interval: interval,
	}

	var err error
	switch cmd := args[0]; cmd {
	case "view":
		err = app.view(args[1:])
	case "apply":
		err = app.apply(args[1:])
	case "export":
		err = app.export(args[1:])
	case "watch":
		err = app.watch(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", cmd)
		printUsage(flags)
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
	asJSON   bool
	interval time.Duration
}

// newSession loads a snapshot file into a fresh session, printing any
// build warnings to stderr.
func (a *app) newSession(snapshotPath string) (*sched.Session, error) {
	props, err := loader.ForPath(snapshotPath).LoadFrom(snapshotPath)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, fmt.Errorf("snapshot %s does not exist", snapshotPath)
	}

	session := sched.NewSession(a.catalog)
	sub := session.Subscribe(func(event sched.Event) {
		if event.Type == sched.EventWarning {
			fmt.Fprintf(os.Stderr, "warning: %s\n", event.Message)
		}
	})
	defer sub.Unsubscribe()

	session.LoadSnapshot(props)
	return session, nil
}

func (a *app) view(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: queuestage view <snapshot>")
	}
	session, err := a.newSession(args[0])
	if err != nil {
		return err
	}
	return a.printHierarchy(session)
}

func (a *app) apply(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: queuestage apply <snapshot> <edits.yaml>")
	}
	session, err := a.newSession(args[0])
	if err != nil {
		return err
	}
	edits, err := script.ParseFile(args[1])
	if err != nil {
		return err
	}
	edits.Apply(session)

	if err := a.printHierarchy(session); err != nil {
		return err
	}
	fmt.Println()
	return printJSON(session.Exports())
}

func (a *app) export(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: queuestage export <snapshot> <edits.yaml>")
	}
	session, err := a.newSession(args[0])
	if err != nil {
		return err
	}
	edits, err := script.ParseFile(args[1])
	if err != nil {
		return err
	}
	edits.Apply(session)
	return printJSON(session.Exports())
}

// watch reloads the snapshot whenever the file changes and reprints the
// hierarchy, until interrupted.
func (a *app) watch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: queuestage watch <snapshot>")
	}
	snapshotPath := args[0]
	session, err := a.newSession(snapshotPath)
	if err != nil {
		return err
	}
	if err := a.printHierarchy(session); err != nil {
		return err
	}

	w := watcher.New(watcher.WithInterval(a.interval))
	if err := w.Watch(snapshotPath); err != nil {
		return err
	}
	w.OnChange(func(event watcher.Event) {
		if event.Op == watcher.OpRemove {
			fmt.Fprintf(os.Stderr, "warning: snapshot %s removed\n", event.Path)
			return
		}
		props, err := loader.ForPath(snapshotPath).LoadFrom(snapshotPath)
		if err != nil || props == nil {
			fmt.Fprintf(os.Stderr, "warning: reload failed: %v\n", err)
			return
		}
		session.LoadSnapshot(props)
		fmt.Printf("\n-- reloaded %s --\n", event.Time.Format(time.TimeOnly))
		if err := a.printHierarchy(session); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	})
	w.Start()
	defer w.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	return nil
}

func (a *app) printHierarchy(session *sched.Session) error {
	root := session.Hierarchy()
	if root == nil {
		return fmt.Errorf("snapshot has no root queue")
	}
	if a.asJSON {
		return printJSON(root)
	}
	fmt.Print(a.renderer.Tree(root))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printUsage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `queuestage - capacity scheduler queue configuration viewer

Usage:
  queuestage view <snapshot>                print the effective hierarchy
  queuestage apply <snapshot> <edits.yaml>  stage edits, print hierarchy and payloads
  queuestage export <snapshot> <edits.yaml> stage edits, print payloads only
  queuestage watch <snapshot>               reprint the hierarchy on file changes

Snapshots may be Hadoop XML (.xml), Java properties, or JSON dumps.

Flags:
%s`, flags.FlagUsages())
}
