package window

import "fyne.io/fyne/v2"

const (
	facePadding = float32(12)
	faceSpacing = float32(8)
)

// faceLayout stacks the dial above the readout, preset row and task entry.
// The dial takes the largest square left after the visible rows.
type faceLayout struct{}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 1 {
		return
	}
	face := objects[0]
	rows := objects[1:]

	availableWidth := size.Width - facePadding*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	rowsHeight := float32(0)
	for _, row := range rows {
		if row.Visible() {
			rowsHeight += row.MinSize().Height + faceSpacing
		}
	}

	side := size.Height - facePadding*2 - rowsHeight
	if side > availableWidth {
		side = availableWidth
	}
	if side < 0 {
		side = 0
	}
	face.Move(fyne.NewPos((size.Width-side)/2, facePadding))
	face.Resize(fyne.NewSize(side, side))

	y := facePadding + side
	for _, row := range rows {
		if !row.Visible() {
			continue
		}
		y += faceSpacing
		height := row.MinSize().Height
		row.Move(fyne.NewPos(facePadding, y))
		row.Resize(fyne.NewSize(availableWidth, height))
		y += height
	}
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 1 {
		return fyne.NewSize(0, 0)
	}
	faceSize := objects[0].MinSize()
	width := faceSize.Width
	height := faceSize.Height
	for _, row := range objects[1:] {
		if !row.Visible() {
			continue
		}
		rowSize := row.MinSize()
		if rowSize.Width > width {
			width = rowSize.Width
		}
		height += rowSize.Height + faceSpacing
	}
	return fyne.NewSize(width+facePadding*2, height+facePadding*2)
}
