package main

import (
	"flag"
	"regexp"

	"SeqStats/pkg/fastx"
)

// flag
var (
	forceFasta = flag.Bool(
		"fasta",
		false,
		"force FASTA parsing",
	)
	forceFastq = flag.Bool(
		"fastq",
		false,
		"force FASTQ parsing",
	)
	sniff = flag.Bool(
		"sniff",
		false,
		"detect the format from file content, ignoring extensions",
	)
	csvOut = flag.Bool(
		"csv",
		false,
		"comma separated output",
	)
	jsonOut = flag.Bool(
		"json",
		false,
		"JSON output",
	)
	nice = flag.Bool(
		"nice",
		false,
		"aligned table sized to the terminal, implies -basename",
	)
	terse = flag.Bool(
		"n50",
		false,
		"print only Filepath and N50",
	)
	absPath = flag.Bool(
		"abs",
		false,
		"print absolute paths",
	)
	baseName = flag.Bool(
		"basename",
		false,
		"print file basenames",
	)
	header = flag.Bool(
		"header",
		true,
		"print the column header",
	)
	offset = flag.Int(
		"offset",
		fastx.DefaultOffset,
		"quality score offset, 0..126",
	)
	recordsOut = flag.String(
		"o",
		"",
		"write readname, length and average quality of every record to this TSV",
	)
	thread = flag.Int(
		"t",
		0,
		"files processed in parallel, 0 for min(files, GOMAXPROCS)",
	)
	list = flag.String(
		"l",
		"",
		"file listing one input per line",
	)
	xlsxOut = flag.String(
		"xlsx",
		"",
		"write an Excel workbook with Stats, Bins and Nx sheets",
	)
	htmlOut = flag.String(
		"html",
		"",
		"write an html Nx curve chart",
	)
	pngOut = flag.String(
		"png",
		"",
		"write a read length distribution plot",
	)
	webhook = flag.String(
		"webhook",
		"",
		"WeChat Work robot key, post a summary when done",
	)
)

// regexp
var (
	comment = regexp.MustCompile(`^\s*(#|$)`)
)
