package pipeline

import (
	"fmt"
	"path/filepath"

	"marchcubes/pkg/gridview"
)

// volumeField adapts models.Volume to gridview.Field.
type volumeField struct {
	w, h, d int
	data    []float64
}

func (f volumeField) Dims() (int, int, int) { return f.w, f.h, f.d }
func (f volumeField) Sample(i, j, k int) float64 {
	return f.data[(k*f.h+j)*f.w+i]
}

// saveVolumeSlices renders the current volume's z-axis slices as JPEGs
// under IntermediaryDir/stage, for inspecting the pipeline's intermediate
// state.
func (p *Pipeline) saveVolumeSlices(stage string) error {
	field := volumeField{w: p.volume.Width, h: p.volume.Height, d: p.volume.Depth, data: p.volume.Data}
	lo, hi := gridview.ValueRange(field)
	viewer := gridview.NewViewer(field, lo, hi)
	dir := filepath.Join(p.params.IntermediaryDir, stage)
	if err := viewer.SaveSliceSequence("z", dir); err != nil {
		return fmt.Errorf("saving %s: %w", stage, err)
	}
	return nil
}
