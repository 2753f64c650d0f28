// Package writer is the sheet writer adapter: a small contract for
// creating sheets, assigning cells and saving the result, with an xlsx
// backend built on excelize and a csv backend built on encoding/csv.
//
// The xlsx backend saves every sheet into one workbook. The csv backend
// saves one sheet per file, selected with SetActive or SaveSheet.
package writer
