// Package sanitize coerces coordinate text to numbers and drops records
// without a usable position.
package sanitize

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/poimap/internal/model"
)

// Run parses RawLatitude/RawLongitude on every record and drops those where
// either is missing or unparsable. Coercion failure is expected data noise,
// not a fault; there is no error path. Relative order of survivors matches
// the input.
func Run(ds model.PoiDataset) model.PoiDataset {
	out := make(model.PoiDataset, 0, len(ds))
	dropped := 0

	for _, rec := range ds {
		lat, ok := coerce(rec.RawLatitude)
		if !ok {
			dropped++
			continue
		}
		lon, ok := coerce(rec.RawLongitude)
		if !ok {
			dropped++
			continue
		}
		rec.Latitude = lat
		rec.Longitude = lon
		out = append(out, rec)
	}

	if dropped > 0 {
		zap.L().Debug("sanitize: dropped records without coordinates",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(out)),
		)
	}
	return out
}

// coerce parses a coordinate. Empty, unparsable, NaN, and infinite values
// are all treated as missing.
func coerce(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
