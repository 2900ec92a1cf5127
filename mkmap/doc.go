/*
Command mkmap prepares the probability grids used by jdep.

The grids are read from images of the occurrence probability figures of
Zarka et al. 2018, A&A 618, A84: figure 1a for all emission, by CML and Io
phase, and figure 1b for non-Io emission, by CML and Ganymede phase.  The
images must be cropped to the plot area, with CML 0 at the left edge, 360
at the right edge, phase 360 at the top and 0 at the bottom.  A separate
image, cropped to the inside of the figure's colorbar, gives the color
scale.


Usage

  mkmap [config.toml]    build grids as configured, default mkmap.toml
  mkmap -v [config.toml] log progress of each inpainting pass
  mkmap --version        display version and copyright


Configuration

The configuration is a TOML file:

  output = "data"        # output directory
  strict = false         # unresolved cells are an error when true
  preview = false        # also write a PNG rendering of each grid
  max_passes = 20        # inpainting passes
  colorbar = "zarka-2018a-fig-1a-legend-cropped.png"

  [[figure]]
  tag = "all"
  image = "zarka-2018a-fig-1a.png"
  max_probability = 63.5

  [[figure]]
  tag = "nonio"
  image = "zarka-2018a-fig-1b.png"
  max_probability = 17.0

File names are relative to the directory of the configuration file.  A
figure may give its own colorbar.  max_probability is the probability at
the top of the colorbar; the bottom is zero.

PNG, JPEG, BMP and TIFF images are accepted.


Output

For each figure, the file probability_map_<tag>.gob is written to the
output directory.  jdep reads the tags "all" and "nonio".


Method

Each pixel is given the probability of the nearest colorbar color.  White
and nearly white pixels, those with mean channel value over 90% of full
scale, are labels and contour lines drawn over the data.  These pixels and
their neighbors are unknown.  Unknown cells are then filled from their
neighbors, a ring at a time, for up to max_passes passes.

Cells can remain unknown after the last pass if a large area of the
image is covered.  A grid with unknown cells is not written.  With
strict = false the other grids are still written; with strict = true
nothing is written.

-------------
Public domain.
*/
package main
