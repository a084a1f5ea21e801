package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"okreads/internal/readinglist"
	"okreads/internal/state"
	"okreads/internal/ui"
)

func printReadingList(w io.Writer, items []readinglist.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "Your reading list is empty.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHORS\tSTATUS")
	for _, it := range items {
		status := "unread"
		if it.Finished {
			status = "finished"
			if it.FinishedDate != nil {
				status += " " + it.FinishedDate.Format("1/2/2006")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.BookID, it.Title, strings.Join(it.Authors, ", "), status)
	}
	return tw.Flush()
}

func printBooks(w io.Writer, books []state.ReadingListBook) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tTITLE\tAUTHORS\tPUBLISHED\t")
	for i, b := range books {
		mark := ""
		if b.IsAdded {
			mark = "(on list)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, b.ID, b.Title, strings.Join(b.Authors, ", "), ui.FormatDate(b.PublishedDate), mark)
	}
	return tw.Flush()
}
