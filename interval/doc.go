/*Package interval implements interval algebra over validated BED records:
  overlap tests, merging of overlapping or book-ended intervals, indexed
  region queries, and per-chromosome summary statistics.
  Operations treat their input as an immutable, replayable sequence and
  return fresh records; merged or filtered results never alias the input.
*/
package interval
