package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/abhisek/wonder/internal/app"
	"github.com/abhisek/wonder/internal/catalog"
	"github.com/abhisek/wonder/internal/config"
	"github.com/abhisek/wonder/internal/store"
)

// runtime holds what a command needs once settings are resolved.
type runtime struct {
	v      *viper.Viper
	cfg    config.Config
	log    *log.Logger
	engine *app.Engine
	store  *store.Store
}

// setup loads settings, seeds the engine from the catalog and then attaches
// the journal so seeding is not recorded on every run.
func (rt *runtime) setup(ctx context.Context, logOut io.Writer) error {
	cfg, err := config.Load(rt.v)
	if err != nil {
		return &usageError{err}
	}
	rt.cfg = cfg
	rt.log = cfg.Logger(logOut)

	rt.engine = app.New(app.Options{Logger: rt.log})

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return &usageError{err}
		}
	}
	if err := catalog.Apply(ctx, rt.engine, cat); err != nil {
		return fmt.Errorf("apply catalog: %w", err)
	}
	rt.log.Debug("catalog loaded", "concepts", len(rt.engine.Concepts()), "path", cfg.CatalogPath)

	if cfg.DBPath == "" {
		rt.log.Debug("activity journal disabled")
		return nil
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	rt.store = st
	rt.engine.AttachJournal(st.EventRepo())
	return nil
}

func (rt *runtime) close() error {
	if rt.store == nil {
		return nil
	}
	err := rt.store.Close()
	rt.store = nil
	return err
}
