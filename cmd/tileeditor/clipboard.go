package main

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/milk9111/tilecanvas/canvas"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copySelection puts the text form of sel on the system clipboard.
func copySelection(sel canvas.Selection) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(selectionText(sel)))
	return nil
}

// selectionText lists one line per selected tile: the key relative to the
// selection, then where the tile was cut from.
func selectionText(sel canvas.Selection) string {
	var b strings.Builder
	rows, cols := sel.Extent()
	fmt.Fprintf(&b, "# %dx%d\n", rows, cols)
	for _, cell := range sel.Cells() {
		t := sel.Tiles[cell]
		fmt.Fprintf(&b, "%s\t%s\t%s", cell, t.SourceURL, t.SourceCell)
		for _, k := range slices.Sorted(maps.Keys(t.Properties)) {
			fmt.Fprintf(&b, "\t%s=%s", k, t.Properties[k])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func logCopy(sel canvas.Selection) {
	if sel.Len() == 0 {
		log.Printf("tileeditor: nothing selected to copy")
		return
	}
	if err := copySelection(sel); err != nil {
		log.Printf("tileeditor: copy: %v", err)
		return
	}
	log.Printf("tileeditor: copied %d tiles", sel.Len())
}
