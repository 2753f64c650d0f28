// Command sheetport exports registered object types to spreadsheets.
package main

func main() {
	Execute()
}
