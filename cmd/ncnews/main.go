// Command ncnews serves the news API and manages its database.
//
//	ncnews serve    # run the HTTP server (default)
//	ncnews seed     # replace all rows with the fixture dataset
//	ncnews routes   # print the route table
//
// All logic lives in internal/; main only hands control to the commands.
package main

import "github.com/sakif/nc-news/cmd/ncnews/commands"

func main() {
	commands.Execute()
}
