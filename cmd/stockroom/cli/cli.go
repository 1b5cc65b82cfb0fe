// Package cli implements the stockroom subcommands. Each invocation logs in,
// runs one command and returns a process exit code.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/odyssey-erp/stockroom/internal/app"
	"github.com/odyssey-erp/stockroom/internal/auth"
	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Options configures a single invocation.
type Options struct {
	Args     []string
	Username string
	Password string
	State    *app.State
	Services *app.Services
	Stdout   io.Writer
	Stderr   io.Writer
}

type env struct {
	ctx      context.Context
	state    *app.State
	services *app.Services
	session  *auth.Session
	stdout   io.Writer
	stderr   io.Writer
}

type command struct {
	// staff marks commands STAFF may run; the rest require ADMIN.
	staff bool
	usage string
	run   func(e *env, args []string) error
}

// errUsage signals the usage text was already printed.
var errUsage = errors.New("usage")

func commands() map[string]command {
	all := map[string]command{}
	for _, group := range []map[string]command{
		productCommands(), supplierCommands(), stockCommands(),
		reportCommands(), userCommands(), backupCommands(),
	} {
		for name, cmd := range group {
			all[name] = cmd
		}
	}
	return all
}

// Run authenticates, checks the session role and runs the command named by
// opts.Args.
func Run(ctx context.Context, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	table := commands()
	name, rest, ok := resolve(table, opts.Args)
	if !ok {
		printUsage(opts.Stderr, table)
		return ExitUsage
	}
	cmd := table[name]

	if opts.Username == "" {
		fmt.Fprintln(opts.Stderr, "stockroom: set STOCKROOM_USER and STOCKROOM_PASSWORD")
		return ExitUsage
	}
	session, err := opts.Services.Auth.Authenticate(ctx, opts.Username, opts.Password)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "stockroom: %s\n", shared.UserSafeMessage(err))
		return ExitFailure
	}
	defer opts.Services.Auth.Logout(session)

	if cmd.staff {
		err = session.RequireActive(name)
	} else {
		err = session.RequireAdmin(name)
	}
	if err != nil {
		fmt.Fprintf(opts.Stderr, "%s: %s\n", name, shared.UserSafeMessage(err))
		return ExitFailure
	}

	e := &env{ctx: auth.WithSession(ctx, session), state: opts.State, services: opts.Services, session: session, stdout: opts.Stdout, stderr: opts.Stderr}
	if err := cmd.run(e, rest); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(opts.Stderr, "usage: stockroom %s %s\n", name, cmd.usage)
			return ExitUsage
		}
		fmt.Fprintf(opts.Stderr, "%s: %s\n", name, shared.UserSafeMessage(err))
		return ExitFailure
	}
	return ExitOK
}

func resolve(table map[string]command, args []string) (string, []string, bool) {
	if len(args) >= 2 {
		if _, ok := table[args[0]+" "+args[1]]; ok {
			return args[0] + " " + args[1], args[2:], true
		}
	}
	if len(args) >= 1 {
		if _, ok := table[args[0]]; ok {
			return args[0], args[1:], true
		}
	}
	return "", nil, false
}

func printUsage(w io.Writer, table map[string]command) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: stockroom <command> [flags]")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		role := "admin"
		if table[name].staff {
			role = "staff"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", name, table[name].usage, role)
	}
	_ = tw.Flush()
}

func newFlags(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parse parses args and wraps any failure as errUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// visited returns the set of flag names given on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}
