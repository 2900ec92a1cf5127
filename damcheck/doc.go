/*
Command damcheck scores jdep predictions against an observation log.

Matthews correlation coefficient is a statistic indicating how well a
classifier works.  Here, we are testing how well the occurrence probability
maps predict whether a radio telescope will detect Jupiter decametric
emission.  Compared to similar statistics, MCC produces a meaningful measure
even when detections are much rarer than non-detections, as they are for
non-Io emission.

  Usage: damcheck [options] <observation log> [threshold]
    -data string: directory of probability and region files (default "data")
    -e string: emission type, all or non-io (default "all")
    -version: display version and copyright
    -v: log ignored lines

The observation log is a text file with one observation per line, a UTC
time followed by 1 if emission was detected or 0 if not:

  2024-10-08 18:30:00 1
  2024-10-08 18:45:00 0
  # receiver down
  2024-10-08T21:00 0

Times are accepted in the same forms as by jdep.  Blank lines and lines
starting with # are skipped.  Other lines that cannot be read are counted
and reported as ignored.

The optional threshold argument is the probability in percent at or above
which a time is taken as a prediction of emission.  The default is 30 for
all emission and 10 for non-Io emission, the thresholds jdep day uses.

Observations from a single session are strongly correlated.  For a useful
score, log sessions spread over many nights and over the range of central
meridian longitude and satellite phase.

-------------
Public domain.
*/
package main
