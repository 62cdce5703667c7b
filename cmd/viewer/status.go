package main

import (
	"fmt"

	"model-viewer/internal/loader"
)

// statusText is the loading indicator text for a load progress report.
func statusText(p loader.Progress) string {
	switch p.Stage {
	case loader.StageFetch:
		switch {
		case p.Total > 0:
			pct := p.Loaded * 100 / p.Total
			return fmt.Sprintf("Loading model... %d%%", min(pct, 100))
		case p.Loaded > 0:
			return fmt.Sprintf("Loading model... %.1f MB", float64(p.Loaded)/(1<<20))
		}
	case loader.StageExtract:
		return "Extracting archive..."
	case loader.StageInspect:
		return "Reading model..."
	case loader.StageDecompress:
		return "Decompressing meshes..."
	}
	return "Loading model..."
}
