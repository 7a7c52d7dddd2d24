package commands

import (
	"fmt"

	"topcv-crawler/internal/fetch"
	"topcv-crawler/internal/scrapers/topcv"
	"topcv-crawler/lib/textutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(slugCmd)
}

var slugCmd = &cobra.Command{
	Use:   "slug <keyword>...",
	Short: "Prints the slug and first search page of each keyword.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, keyword := range args {
			slug := textutil.Slugify(keyword)
			if slug == "" {
				fmt.Printf("%s\t(empty slug)\n", keyword)
				continue
			}
			fmt.Printf("%s\t%s\t%s\n", keyword, slug, topcv.SearchUrl(fetch.DefaultBaseUrl, slug, 1))
		}
	},
}
