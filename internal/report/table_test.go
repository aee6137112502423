package report

import "testing"

func TestRenderTable(t *testing.T) {
	entries := []Entry{
		{DisplayName: "a.txt", SizeLabel: "4 Byte", DuplicatePaths: []string{"/r/a.txt", "/r/s/a.txt"}, Count: 1},
	}

	want := "" +
		"+-----------+------------+--------+-------+\n" +
		"| file_name | duplicates | size   | count |\n" +
		"+-----------+------------+--------+-------+\n" +
		"| a.txt     | /r/a.txt   | 4 Byte | 1     |\n" +
		"|           | /r/s/a.txt |        |       |\n" +
		"+-----------+------------+--------+-------+\n"

	if got := RenderTable(entries); got != want {
		t.Errorf("RenderTable() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	want := "" +
		"+-----------+------------+------+-------+\n" +
		"| file_name | duplicates | size | count |\n" +
		"+-----------+------------+------+-------+\n"

	if got := RenderTable(nil); got != want {
		t.Errorf("RenderTable(nil) =\n%s\nwant\n%s", got, want)
	}
}
