package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestCheckFileExist(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.toml")

	convey.Convey("missing file", t, func() {
		exist, err := CheckFileExist(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeFalse)
	})

	convey.Convey("existing file", t, func() {
		convey.So(os.WriteFile(file, []byte("a = 1\n"), 0o644), convey.ShouldBeNil)
		exist, err := CheckFileExist(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeTrue)
	})
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	convey.Convey("read", t, func() {
		file := filepath.Join(dir, "in.xml")
		convey.So(os.WriteFile(file, []byte("<a/>"), 0o644), convey.ShouldBeNil)
		data, err := ReadFile(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(data), convey.ShouldEqual, "<a/>")
	})

	convey.Convey("empty path", t, func() {
		_, err := ReadFile("")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("missing file", t, func() {
		_, err := ReadFile(filepath.Join(dir, "nope"))
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "not exist")
	})
}

func TestWriteFileOrStdout(t *testing.T) {
	dir := t.TempDir()

	convey.Convey("stdout", t, func() {
		var buf bytes.Buffer
		convey.So(WriteFileOrStdout("", []byte("x"), &buf), convey.ShouldBeNil)
		convey.So(buf.String(), convey.ShouldEqual, "x")
	})

	convey.Convey("file in new directory", t, func() {
		var buf bytes.Buffer
		file := filepath.Join(dir, "sub", "out.json")
		convey.So(WriteFileOrStdout(file, []byte("{}"), &buf), convey.ShouldBeNil)
		convey.So(buf.Len(), convey.ShouldEqual, 0)
		data, err := os.ReadFile(file)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(data), convey.ShouldEqual, "{}")
	})
}
