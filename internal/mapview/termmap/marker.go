package termmap

import (
	"stayfinder/internal/domain"
	"stayfinder/internal/mapview"
)

type marker struct {
	engine     *Engine
	pos        domain.LatLng
	pill       string
	emphasized bool
	popup      mapview.Popup
	hasPopup   bool
	click      func()
}

func (m *marker) Position() domain.LatLng { return m.pos }

func (m *marker) SetEmphasis(on bool) { m.emphasized = on }

func (m *marker) BindPopup(p mapview.Popup) {
	m.popup = p
	m.hasPopup = true
}

func (m *marker) OpenPopup() {
	if m.hasPopup {
		m.engine.open = m
	}
}

func (m *marker) OnClick(fn func()) { m.click = fn }

func (m *marker) Remove() { m.engine.removeMarker(m) }
