package commands

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bonnetkb/bonnet/config"
	"github.com/bonnetkb/bonnet/db"
	"github.com/bonnetkb/bonnet/errors"
	"github.com/bonnetkb/bonnet/kb"
	"github.com/bonnetkb/bonnet/logger"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it loads from config. Uses logger.Logger for db operations.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.Database.Path
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}

// openStore opens the configured database and wraps it in a store. The
// caller owns the returned *sql.DB and must close it.
func openStore() (*sql.DB, *kb.SQLStore, error) {
	database, err := openDatabase("")
	if err != nil {
		return nil, nil, err
	}
	return database, kb.NewSQLStore(database, logger.Logger), nil
}

// resolveEntity maps a user token to exactly one entity using the
// configured search limit and the command's disambiguation policy.
func resolveEntity(cmd *cobra.Command, store *kb.SQLStore, token string) (*kb.Entity, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	policy, err := commandPolicy(cmd, cfg)
	if err != nil {
		return nil, err
	}

	resolver := kb.NewResolver(store, cfg.Search.Limit, logger.Logger)
	entity, err := resolver.Resolve(token, policy, promptForCandidate)
	if err != nil {
		var ambiguous *kb.AmbiguousError
		if errors.As(err, &ambiguous) {
			printCandidates(cmd, ambiguous)
		}
		return nil, err
	}
	return entity, nil
}

// commandPolicy derives the disambiguation policy for one invocation:
// --first wins, then an explicit --policy, then interactive on a terminal,
// then the configured default.
func commandPolicy(cmd *cobra.Command, cfg *config.Config) (kb.Policy, error) {
	if first, _ := cmd.Flags().GetBool("first"); first {
		return kb.PolicyFirst, nil
	}
	if raw, _ := cmd.Flags().GetString("policy"); raw != "" {
		return kb.ParsePolicy(raw)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return kb.PolicyInteractive, nil
	}
	return kb.ParsePolicy(cfg.Search.Policy)
}

// promptForCandidate is the interactive Chooser: a terminal picker over
// the matched entities.
func promptForCandidate(candidates []kb.Candidate) (kb.Candidate, error) {
	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = fmt.Sprintf("%s: %s", c.ID, c.Name)
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText("Select entity").
		Show()
	if err != nil {
		return kb.Candidate{}, errors.Wrap(err, "entity selection aborted")
	}

	for i, option := range options {
		if option == selected {
			return candidates[i], nil
		}
	}
	return kb.Candidate{}, errors.Newf("selection %q did not match any candidate", selected)
}

func printCandidates(cmd *cobra.Command, ambiguous *kb.AmbiguousError) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Matched %d entities:\n", len(ambiguous.Candidates))
	for _, c := range ambiguous.Candidates {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", c.ID, c.Name)
	}
	if ambiguous.Truncated {
		fmt.Fprintln(cmd.ErrOrStderr(), "  ... more matches not shown; refine the query")
	}
}

// addResolutionFlags registers the disambiguation flags shared by every
// command that accepts an entity token.
func addResolutionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("first", false, "Pick the top-ranked entity when a search matches several")
	cmd.Flags().String("policy", "", "Disambiguation policy: fail, first, or interactive")
}
