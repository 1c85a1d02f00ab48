package main

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"

	"github.com/yyyoichi/stegano_lsb/internal/imageio"
	"github.com/yyyoichi/stegano_lsb/internal/quality"
)

// printReport prints the size comparison and, when report is not nil, the
// pixel comparison of the two images.
func printReport(w io.Writer, sizes imageio.SizeComparison, report *quality.Report) {
	if sizes.Same() {
		fmt.Fprintf(w, "File %s and file %s have the same size in bytes.\n", sizes.Original, sizes.Result)
	} else {
		fmt.Fprintf(w, "File %s and file %s have different sizes in bytes.\n", sizes.Original, sizes.Result)
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column(fmt.Sprintf("Size of %s", sizes.Original))
	row.Column(fmt.Sprintf("%d B", sizes.OriginalSize))

	row = tab.Row()
	row.Column(fmt.Sprintf("Size of %s", sizes.Result))
	row.Column(fmt.Sprintf("%d B", sizes.ResultSize))

	if report == nil {
		tab.Print(w)
		return
	}

	row = tab.Row()
	row.Column("Same width")
	row.Column(fmt.Sprintf("%v", report.SameWidth))

	row = tab.Row()
	row.Column("Same height")
	row.Column(fmt.Sprintf("%v", report.SameHeight))

	if report.SameWidth && report.SameHeight {
		row = tab.Row()
		row.Column("Changed channels")
		row.Column(fmt.Sprintf("%d / %d", report.ChangedChannels, report.Channels))

		row = tab.Row()
		row.Column("PSNR").SetFormat(tabulate.FmtBold)
		row.Column(fmt.Sprintf("%.2f dB", report.PSNR)).SetFormat(tabulate.FmtBold)
	}

	tab.Print(w)
}
