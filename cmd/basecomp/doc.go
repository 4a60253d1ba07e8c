// 17 Oct 2026

/*
Basecomp collects base composition statistics from fastq files and writes
them as a table. It is for checking sequencing runs for composition bias,
homopolymer tails and skew along the reads.

For every read, it looks at the run of identical bases at the 3' end (the
tail), how often each base occurs in the read and which base is found at
each position. Only A, C, G and T are counted. Anything else is skipped.

The output is tab separated with a header line. Columns are
	position
	A_tail_sequences ... G_tail_sequences    reads with a tail of this length
	A_total_sequences ... G_total_sequences  reads with this many of the base
	A_pct_content ... G_pct_content          fraction of bases at this position
The first column is shared by the three kinds of statistic, so for tails it
means length, for totals it means a count and only for content is it a
position. Rows 1 to the span are always written, plus any other value seen.

Input files may be gzipped or not. We look at the contents, not the name.
Fasta files are read as well as fastq. A symbol in a read which is not a
base, such as * or N, is skipped and does not stop the run.

Usage:
	basecomp -i file_list -o out.tsv [flags]

The flags are:
	-i, -input list
		Text file with the names of fastq files, one per line.
		Blank lines and lines starting with # are ignored.
	-o, -output name
		Output file. Use - for standard output.
	-j n
		Read n files at the same time. The result does not change.
	-s span
		Rows 1..span are always in the table. Default 149.
	-u
		Upper case reads before counting. Otherwise lower case is skipped.
	-v
		Verbose.
	-t
		Print out timing information.
*/
package main
