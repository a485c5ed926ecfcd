// Package container reads and writes the minimal ZIP archives used as the
// outer container of XLSX files.
//
// Archives are always written with the "stored" method: no compression is
// applied, so every entry's compressed and uncompressed sizes are equal.
//
//	data := container.Build([]container.Entry{
//	    {Name: "hello.txt", Data: []byte("hello")},
//	})
//
// Two read paths are provided. Scan walks the buffer looking for local file
// header signatures and returns the text of every stored entry it can fully
// read. Extract walks the central directory instead and falls back to Scan
// when the directory is missing or damaged:
//
//	files := container.Extract(data)
//	fmt.Println(files["hello.txt"])
//
// Both read paths are best-effort. A truncated or corrupt buffer yields the
// entries that could be recovered and never an error or panic.
//
// Entries compressed with DEFLATE are skipped unless ExtractOptions.Inflate
// is set; other compression methods are always skipped.
package container
