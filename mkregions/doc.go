/*
Command mkregions rasterizes emission region definitions into the region
bitmask files read by jdep.

The bitmask files are distributed in the jdep data directory, so you do not
need to run mkregions at all.  The program is provided for those interested
in redrawing the regions, for example against a new probability figure.

Usage

Usage:

   mkregions [-o dir] [-v] regions.toml...
   mkregions -version

Each argument is a region definition file.  A definition file names a tag,
the grid size, and one or more polygons in pixel coordinates of the
probability figure:

   tag = "io"
   reference = "jupiter_io.png"

   [[region]]
   name = "A"
   vertices = [[412.0, 88.0], [530.0, 88.0], [530.0, 301.0], [412.0, 260.0]]

Grid size is given either by rows and cols or by the size of a reference
image.  A reference image name is taken relative to the definition file.
The bit of a region may be omitted when the name is one of A, A', A", B, B',
C or D.

Each definition file produces region_bitmask_<tag>.gob in the output
directory, "data" unless -o is given.  Cells inside several polygons carry
all of their bits.  A cell on a polygon edge is inside the polygon.

The files distributed with jdep were made from tags "io" and "nonio".

-------------
Public domain.
*/
package main
