package geoplot

import "testing"

func TestFPSPanelRefresh(t *testing.T) {
	var p fpsPanel
	p.tick(0.2)
	if p.stale {
		t.Error("stale after 0.2s, want fresh until the refresh interval")
	}
	p.tick(0.3)
	if !p.stale {
		t.Error("stale = false after 0.5s")
	}
	if p.elapsed != 0 {
		t.Errorf("elapsed = %v, want reset to 0", p.elapsed)
	}
}

func TestFPSPanelToggle(t *testing.T) {
	var p fpsPanel
	p.toggle()
	if !p.visible || !p.stale {
		t.Errorf("after toggle: visible=%v stale=%v, want both true", p.visible, p.stale)
	}
	p.toggle()
	if p.visible {
		t.Error("second toggle left the panel visible")
	}
	// Hidden panels never allocate.
	p.draw(nil)
	if p.img != nil {
		t.Error("hidden panel allocated an image")
	}
	p.close()
}
