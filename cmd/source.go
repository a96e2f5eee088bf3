package main

import (
	"context"

	"github.com/sells-group/poimap/internal/model"
	"github.com/sells-group/poimap/internal/sanitize"
	"github.com/sells-group/poimap/internal/source"
)

func initSource() (source.Source, error) {
	return source.New(cfg.Source)
}

// loadDataset runs the fetch+sanitize half of one interaction cycle.
func loadDataset(ctx context.Context, src source.Source) (model.PoiDataset, error) {
	ds, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return sanitize.Run(ds), nil
}
