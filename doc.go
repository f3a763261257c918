// Package geoplot draws geographic data over slippy-map tiles with [Ebitengine].
//
// A [Session] accumulates layers and view settings, then either opens an
// interactive window ([Session.Show]) or renders a single frame to a PNG file
// ([Session.SaveFig]). Both calls block, and both reset the session to its
// defaults when they return, so the next plot starts from a clean slate.
//
// # Quick start
//
//	data, err := geoplot.NewPoints(lats, lons)
//	if err != nil {
//		log.Fatal(err)
//	}
//	s := geoplot.NewSession()
//	if err := s.Scatter(data); err != nil {
//		log.Fatal(err)
//	}
//	if err := s.Show(); err != nil {
//		log.Fatal(err)
//	}
//
// # Layers
//
// Each plotting method validates its arguments eagerly and returns an error
// wrapping [ErrInvalidArgument] on bad input; nothing is drawn until Show or
// SaveFig. Layers draw in the order they were added:
//
//   - [Session.Scatter], [Session.Hist], [Session.KDE] and [Session.Markers]
//     plot point data
//   - [Session.Graph] draws an edge per row between two coordinate pairs
//   - [Session.ConvexHull] fills the hull of the points
//   - [Session.Voronoi], [Session.Delaunay] and [Session.Shapefiles] are
//     accepted and validated, but not rendered
//
// Anything else can be drawn with a [CustomLayer]; its [DrawFunc] receives a
// [View] for projecting latitude and longitude to screen pixels.
//
// # Tiles
//
// The basemap is read from a local tile cache laid out as
// <dir>/<z>/<x>/<y>.png. Pick a builtin style with
// [Session.SetTilesProvider] or describe your own with [CustomTiles].
// Missing tiles are left blank.
//
// # Settings
//
// Session defaults come from [DefaultSettings], or from [LoadSettings], which
// reads a TOML file and then GEOPLOT_* environment variables:
//
//	tiles = "positron"
//	map_alpha = 200
//	log_level = "debug"
//
// Pass the result to [NewSession] with [WithSettings] and [WithLogger].
//
// # Viewer
//
// Drag pans and the mouse wheel or +/- zooms. P saves a screenshot, M toggles
// the basemap, F toggles the frame rate readout and Esc quits. A [Script]
// replays the same input unattended; see [Session.SetScript].
//
// ebiten runs one game loop per process, so the builtin viewer serves a
// single Show or SaveFig. Later runs return a [RenderError]; script several
// screenshots into one run instead.
//
// [Ebitengine]: https://ebitengine.org
package geoplot
