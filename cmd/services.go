package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/auth"
	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/flags"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/store"
)

// services is everything a command needs, wired over one store.
type services struct {
	store    *store.Store
	catalog  *catalog.Catalog
	progress *progress.Store
	flags    *flags.Store
	session  *auth.Session
	user     *auth.User // nil when signed out
}

// openServices loads the catalog, opens the store and hydrates the progress
// of the signed-in learner. Session or progress read failures are logged and
// leave progress empty.
func openServices(ctx context.Context, cmd *cobra.Command) (*services, error) {
	cat, err := catalog.Load(resolveCatalogPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, issue := range catalog.Validate(cat) {
		log.Warn("catalog issue", zap.String("track", issue.TrackID), zap.String("issue", issue.Message))
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	kv := st.KVRepo()
	fl := flags.New(kv, log.Named("flags"))
	sess := auth.NewSession(kv, fl, log.Named("auth"))
	prog := progress.NewStore(nil, log.Named("progress"))

	user, err := sess.Current(ctx)
	if err != nil {
		log.Warn("could not restore session", zap.Error(err))
		user = nil
	}
	if user != nil {
		if err := prog.Switch(ctx, st.ProgressRepo(user.ID)); err != nil {
			log.Warn("could not load progress", zap.String("user_id", user.ID), zap.Error(err))
		}
	}

	return &services{
		store:    st,
		catalog:  cat,
		progress: prog,
		flags:    fl,
		session:  sess,
		user:     user,
	}, nil
}

func (s *services) Close() error {
	return s.store.Close()
}
