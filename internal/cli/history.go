package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/airdeck/internal/output"
	"github.com/ayusman/airdeck/internal/store"
)

func NewHistoryCmd(deps *Dependencies) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List past sessions, or the actions of one session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())

			dbPath := deps.Config.DatabasePath()
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				formatter.Info("No sessions found")
				return nil
			}

			st, err := store.New(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			if len(args) == 1 {
				return showSession(formatter, st, args[0])
			}

			sessions, err := st.Sessions().List(limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				formatter.Info("No sessions found")
				return nil
			}

			formatter.SessionListHeader()
			for _, s := range sessions {
				formatter.SessionListItem(s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to show, 0 for all")

	return cmd
}

func showSession(formatter *output.Formatter, st *store.Store, id string) error {
	sess, err := st.Sessions().GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no session %q", id)
	}
	if err != nil {
		return err
	}

	events, err := st.Events().ListBySession(sess.ID)
	if err != nil {
		return err
	}

	formatter.SessionDetail(sess)
	if len(events) == 0 {
		formatter.Info("No actions recorded")
		return nil
	}
	for _, e := range events {
		formatter.EventListItem(e)
	}
	return nil
}
