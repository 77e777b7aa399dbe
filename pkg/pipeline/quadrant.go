package pipeline

import "marchcubes/internal/models"

// splitQuadrants divides v's XY extent into four overlapping-free
// subvolumes (full depth, half width, half height), matching the paper's
// Algorithm 1 division so each can be denoised independently.
func splitQuadrants(v models.Volume) []models.SubVolume {
	halfW := v.Width / 2
	halfH := v.Height / 2
	if halfW == 0 {
		halfW = v.Width
	}
	if halfH == 0 {
		halfH = v.Height
	}

	bounds := []struct {
		quad   models.Quadrant
		ox, oy int
		w, h   int
	}{
		{models.TopLeft, 0, 0, halfW, halfH},
		{models.TopRight, halfW, 0, v.Width - halfW, halfH},
		{models.BottomLeft, 0, halfH, halfW, v.Height - halfH},
		{models.BottomRight, halfW, halfH, v.Width - halfW, v.Height - halfH},
	}

	subs := make([]models.SubVolume, 0, 4)
	for _, b := range bounds {
		if b.w <= 0 || b.h <= 0 {
			continue
		}
		sv := models.SubVolume{
			Data:         make([]float64, b.w*b.h*v.Depth),
			Width:        b.w,
			Height:       b.h,
			Depth:        v.Depth,
			QuadrantType: b.quad,
			OriginX:      b.ox,
			OriginY:      b.oy,
		}
		idx := 0
		for k := 0; k < v.Depth; k++ {
			for j := 0; j < b.h; j++ {
				for i := 0; i < b.w; i++ {
					sv.Data[idx] = v.Data[volumeIndex(v, b.ox+i, b.oy+j, k)]
					idx++
				}
			}
		}
		subs = append(subs, sv)
	}
	return subs
}

// mergeQuadrants writes each subvolume's data back into v in place.
func mergeQuadrants(v *models.Volume, subs []models.SubVolume) {
	for _, sv := range subs {
		idx := 0
		for k := 0; k < sv.Depth; k++ {
			for j := 0; j < sv.Height; j++ {
				for i := 0; i < sv.Width; i++ {
					v.Data[volumeIndex(*v, sv.OriginX+i, sv.OriginY+j, k)] = sv.Data[idx]
					idx++
				}
			}
		}
	}
}

func volumeIndex(v models.Volume, i, j, k int) int {
	return (k*v.Height+j)*v.Width + i
}
