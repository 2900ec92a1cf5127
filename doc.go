/*
Command jdep predicts Jupiter decametric emission.

Contents

Version 0.3

  Program overview
  Installing
  Command line usage
  Data files
  Algorithm outline


Program overview

Jupiter is a strong radio source at decametric wavelengths, 10 to 40 MHz,
but emission is beamed and is only received at Earth for certain
geometries.  Zarka et al. 2018, A&A 618, A84, give the occurrence
probability of emission as a function of the central meridian longitude
(CML) of Jupiter and the orbital phase of Io, for all emission, and as a
function of CML and the phase of Ganymede for emission not related to Io.
They also label the regions of these diagrams where known emission
components, A, A', A", B, B', C and D, occur.

jdep looks up the probability and the regions for any time.

Sample run:

  $ jdep day 2024-10-10
  2024-10-10 08:45:00 with 41% from Io A
  2024-10-10 09:00:00 with 52% from Io A
  2024-10-10 09:15:00 with 58% from Io A
  2024-10-10 09:30:00 with 60% from Io A
  ...

The output lists times of the day, UTC, where the probability of emission is
at least 30%.  With --non-io, only non-Io emission is considered and the
threshold is 10%.

Point queries show the geometry as well:

  $ jdep at "2024-10-08 18:31:00"
  2024-10-08 18:31:00  CML 255°31′  Io 272°01′  Ganymede 334°53′  all 15%  non-Io 3%  non-Io

"non-Io" alone as a region means emission outside any labeled region.


Installing

  go install github.com/jdep/jdep@latest

installs jdep.  The builder commands mkmap and mkregions, and the
evaluation command damcheck, are installed the same way from their
directories.


Command line usage

  jdep day DATE [--non-io] [--step 15m] [--threshold P] [--workers N]
  jdep at TIME... [--mjd]

Common options:

  --data DIR     directory of the data files, default $JDEP_DATA or "data"
  -v, --verbose  debug logging

DATE is YYYY-MM-DD or YYYY/MM/DD.  TIME is an ISO 8601 time with either a
space or a T between date and time, or "now".  With --mjd, TIME is a
Modified Julian Date.  All times are UTC.


Data files

jdep reads four files from the data directory:

  probability_map_all.gob     all emission probability, by CML and Io phase
  probability_map_nonio.gob   non-Io emission probability, by CML and Ganymede phase
  region_bitmask_io.gob       emission regions, by CML and Io phase
  region_bitmask_nonio.gob    non-Io emission regions, by CML and Ganymede phase

All four grids must be the same size.  Columns run from CML 0 to 360 degrees
and rows from phase 360 at the top to 0 at the bottom, matching the figures
of the paper.

The probability files are built from images of figures 1a and 1b of the
paper by mkmap.  The region files are built from region outlines by
mkregions.  See the documentation of those commands.


Algorithm outline

1.  The time is converted to UTC and a Julian date.

2.  The System III CML is computed from a short periodic formula for the
rotation of Jupiter.  Io and Ganymede positions come from the lower
accuracy theory of the Galilean satellites in chapter 44 of Meeus,
Astronomical Algorithms.  A satellite's phase is its angle from superior
conjunction, measured in the direction of orbital motion.

Geometry results are cached by time for the last eight times queried.

3.  CML and phase are scaled to the nearest grid cell.  The probability is
the median of the 3×3 cells around it, as the grid is finer than the
smoothed data it was read from.

4.  Regions are looked up the same way in the region grids, where each
cell holds one bit per region.  Regions are not reported when emission
is unlikely: Io regions need an all emission probability of 10%, non-Io
regions a non-Io probability of 5%, and both together an all emission
probability of 5%.

-------------
Public domain.
*/
package main
