// Package plot renders diagnostic figures for borehole data: signal and
// anomaly plots, CUSUM charts, borehole log columns, correlation heat maps,
// connection graphs, eigensignal panels, and wavelet/spectral coefficient
// images.
//
// Rendering is built on gonum.org/v1/plot. Constructors return *plot.Plot
// values (or a Grid of them) that callers can further customise before
// saving; SavePNG writes figures at a configurable DPI and logs the render
// through slog.
package plot
