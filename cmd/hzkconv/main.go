package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mzhao/hzkconv/internal/charset"
	"github.com/mzhao/hzkconv/internal/model"
	"github.com/mzhao/hzkconv/internal/render"
	"github.com/mzhao/hzkconv/internal/store"
	"github.com/mzhao/hzkconv/internal/transcode"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hzkconv",
	Short: "Work with HZK-style fixed-size bitmap glyph stores",
	Long: `hzkconv is a tool for HZK/ASC dot-matrix font files.

It can transcode whole font blobs between vertical (column-major) and
horizontal (row-major) bit packing, dump individual glyphs as pixel grids
or source arrays, export full data tables, and generate the GB2312 to
Unicode codepoint table.

Font blobs carry no header: dimensions, packing direction and the
skip-region flag come from the built-in family registry or from flags.`,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(genmapCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveSpec turns the shared --family / --width / --height flags into a
// glyph spec, plus the family entry when one was named.
func resolveSpec(cmd *cobra.Command) (model.GlyphSpec, *model.Family, error) {
	famName, _ := cmd.Flags().GetString("family")
	if famName != "" {
		fam, ok := model.LookupFamily(famName)
		if !ok {
			return model.GlyphSpec{}, nil, fmt.Errorf("unknown font family %q (known: %s)",
				famName, strings.Join(sortedFamilyNames(), ", "))
		}
		return fam.Spec, &fam, nil
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	spec := model.GlyphSpec{Width: width, Height: height}
	if !spec.Valid() {
		return model.GlyphSpec{}, nil, fmt.Errorf("need --family or positive --width and --height")
	}
	return spec, nil, nil
}

func sortedFamilyNames() []string {
	names := model.FamilyNames()
	sort.Strings(names)
	return names
}

// convert command
var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Transcode a font blob between packing directions",
	Long: `Transcode every glyph record of a font blob from one bit-packing
direction to the other.

Record order and count are preserved; a trailing partial record is dropped
and reported. The output is written to a temporary file and renamed into
place on completion, so converting a file onto itself is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output file (required)")
	convertCmd.MarkFlagRequired("output")
	convertCmd.Flags().String("family", "", "Font family name (e.g. HZK16)")
	convertCmd.Flags().Int("width", 0, "Glyph width in pixels")
	convertCmd.Flags().Int("height", 0, "Glyph height in pixels")
	convertCmd.Flags().String("from", "vertical", "Source packing: vertical, horizontal")
	convertCmd.Flags().String("to", "horizontal", "Destination packing: vertical, horizontal")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	spec, _, err := resolveSpec(cmd)
	if err != nil {
		return err
	}

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	from, err := model.ParsePacking(fromStr)
	if err != nil {
		return err
	}
	to, err := model.ParsePacking(toStr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	src := store.New(data, spec)
	log.WithFields(log.Fields{
		"spec":    spec.String(),
		"records": src.RecordCount(),
		"from":    from.String(),
		"to":      to.String(),
	}).Info("converting font blob")

	if rem := src.Remainder(); rem != 0 {
		log.Warnf("blob length %d is not a multiple of record size %d; %d trailing bytes will be dropped",
			src.Len(), spec.RecordSize(), rem)
	}

	dst, report, err := transcode.All(src, from, to, func(done, total int) {
		if done%1000 == 0 || done == total {
			log.Infof("progress: %d/%d records", done, total)
		}
	})
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}

	if err := writeFileAtomic(outputPath, dst); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	log.WithFields(log.Fields{
		"records": report.Records,
		"dropped": report.DroppedBytes,
		"output":  outputPath,
	}).Info("conversion complete")
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so a
// conversion targeting its own input never clobbers unread source records.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <family> <file> <text>",
	Short: "Dump glyph bitmaps for the given text",
	Long: `Resolve each character of <text> inside the font blob and print its
encoding bytes, record offset, source array and pixel grid.

Characters the font cannot represent are skipped with a warning; they
never abort the rest of the text.`,
	Args: cobra.ExactArgs(3),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().Bool("color", false, "Highlight filled cells with ANSI colors")
	dumpCmd.Flags().Bool("no-array", false, "Skip the source array dump")
}

func runDump(cmd *cobra.Command, args []string) error {
	famName, inputPath, text := args[0], args[1], args[2]
	color, _ := cmd.Flags().GetBool("color")
	noArray, _ := cmd.Flags().GetBool("no-array")

	fam, ok := model.LookupFamily(famName)
	if !ok {
		return fmt.Errorf("unknown font family %q (known: %s)",
			famName, strings.Join(sortedFamilyNames(), ", "))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read font file: %w", err)
	}

	codec := charset.NewGB2312()
	st := store.New(data, fam.Spec)
	rw := render.NewWriter(os.Stdout, color)

	var skipped []rune
	for _, r := range text {
		fmt.Printf("\nCharacter: %q (U+%04X)\n", r, r)

		if fam.Charset == model.CharsetGB2312 {
			b1, b2, err := charset.EncodeBytes(r, codec)
			if err != nil {
				log.Warnf("skipping %q: %v", r, err)
				skipped = append(skipped, r)
				continue
			}
			fmt.Printf("GB2312 bytes: 0x%02X 0x%02X\n", b1, b2)
		}

		index, err := charset.Resolve(r, fam, codec)
		if err != nil {
			log.Warnf("skipping %q: %v", r, err)
			skipped = append(skipped, r)
			continue
		}
		offset := index * fam.Spec.RecordSize()
		fmt.Printf("Record index: %d, offset: %d (0x%X)\n", index, offset, offset)

		rec := st.ReadRecord(index)
		if len(rec) < fam.Spec.RecordSize() {
			log.Warnf("record %d truncated: %d of %d bytes; missing bytes render blank",
				index, len(rec), fam.Spec.RecordSize())
		}

		if !noArray {
			fmt.Println()
			if err := rw.WriteSourceArray(rec, fam.Spec); err != nil {
				return err
			}
		}
		fmt.Println()
		if err := rw.WritePattern(rec, fam.Spec, fam.Packing); err != nil {
			return err
		}
	}

	if len(skipped) > 0 {
		log.Warnf("%d character(s) not representable in %s: %q", len(skipped), fam.Name, string(skipped))
	}
	return nil
}

// export command
var exportCmd = &cobra.Command{
	Use:   "export <family> <file>",
	Short: "Export a font blob as a source data table",
	Long: `Export every glyph of an ASCII-indexed font blob as a data table with a
width/height/bytesPerChar header and per-row bit comments.

Records are re-packed to horizontal (row-major) order for embedding; code
points without a record in the file come out blank.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	famName, inputPath := args[0], args[1]
	outputPath, _ := cmd.Flags().GetString("output")

	fam, ok := model.LookupFamily(famName)
	if !ok {
		return fmt.Errorf("unknown font family %q", famName)
	}
	if fam.Charset != model.CharsetASCII {
		return fmt.Errorf("export supports ASCII-indexed families, %s is %s", fam.Name, fam.Charset)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read font file: %w", err)
	}
	st := store.New(data, fam.Spec)

	// The full 0x00-0x7F table; only printable code points have records.
	glyphs := make([]render.TableGlyph, 0, 128)
	for cp := rune(0); cp < 0x80; cp++ {
		g := render.TableGlyph{Codepoint: cp}
		if index, err := charset.ASCIIIndex(cp); err == nil {
			rec := st.ReadRecord(index)
			if fam.Packing != model.RowMajor {
				rec, err = transcode.Record(rec, fam.Spec, fam.Packing, model.RowMajor)
				if err != nil {
					return fmt.Errorf("transcode glyph %d: %w", cp, err)
				}
			}
			g.Record = rec
		}
		glyphs = append(glyphs, g)
	}

	out := os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	name := fmt.Sprintf("%dx%d", fam.Spec.Width, fam.Spec.Height)
	if err := render.NewWriter(out, false).WriteTable(name, fam.Spec, glyphs); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if outputPath != "" {
		log.Infof("exported %d glyphs to %s", len(glyphs), outputPath)
	}
	return nil
}

// genmap command
var genmapCmd = &cobra.Command{
	Use:   "genmap",
	Short: "Generate the GB2312 to Unicode codepoint table",
	Long: `Enumerate the full 94x94 region/position grid and write the resulting
Unicode-to-GB2312 table as JSON: keys are decimal Unicode code points,
values are 2-element byte arrays.`,
	Args: cobra.NoArgs,
	RunE: runGenmap,
}

func init() {
	genmapCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runGenmap(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	m := charset.BuildFullMap(charset.NewGB2312())
	log.Infof("generated %d character mappings", m.Len())

	table := make(map[string][2]int, m.Len())
	for r, b := range m.Entries() {
		table[strconv.Itoa(int(r))] = [2]int{int(b[0]), int(b[1])}
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(table); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if outputPath != "" {
		log.Infof("mapping saved to %s", outputPath)
	}
	return nil
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Display font blob statistics",
	Long: `Display record count and integrity information for a font blob under a
given glyph spec.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().String("family", "", "Font family name (e.g. HZK16)")
	infoCmd.Flags().Int("width", 0, "Glyph width in pixels")
	infoCmd.Flags().Int("height", 0, "Glyph height in pixels")
	infoCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	spec, fam, err := resolveSpec(cmd)
	if err != nil {
		return err
	}

	stat, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}
	size := stat.Size()

	recordSize := int64(spec.RecordSize())
	count := size / recordSize
	remainder := size % recordSize

	if jsonOutput {
		info := map[string]interface{}{
			"file":       inputPath,
			"width":      spec.Width,
			"height":     spec.Height,
			"recordSize": recordSize,
			"records":    count,
			"remainder":  remainder,
			"fileSize":   size,
		}
		if fam != nil {
			info["family"] = fam.Name
			info["packing"] = fam.Packing.String()
			info["charset"] = string(fam.Charset)
			info["skipRegions"] = fam.SkipRegions
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Printf("Font blob: %s\n", inputPath)
	fmt.Println(strings.Repeat("=", 50))
	if fam != nil {
		fmt.Printf("Family:        %s (%s, %s", fam.Name, fam.Charset, fam.Packing)
		if fam.SkipRegions {
			fmt.Printf(", first 15 regions absent")
		}
		fmt.Println(")")
	}
	fmt.Printf("Glyph size:    %s (%d bytes per record)\n", spec, recordSize)
	fmt.Printf("Records:       %d\n", count)
	fmt.Printf("File size:     %s (%d bytes)\n", formatBytes(size), size)
	if remainder != 0 {
		fmt.Printf("Warning:       %d trailing bytes do not form a complete record\n", remainder)
	}
	if fam != nil && fam.Charset == model.CharsetGB2312 {
		full := int64(94 * 94)
		if fam.SkipRegions {
			full = int64((94 - 15) * 94)
		}
		if count < full {
			fmt.Printf("Warning:       %d records is fewer than the %d-slot charset grid\n", count, full)
		}
	}
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a directory over HTTP",
	Long: `Serve static files from a directory, for browser-based font demos.

Responses carry a permissive CORS header so pages on other origins can
fetch the blobs and generated tables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "Listen address")
	serveCmd.Flags().String("dir", ".", "Directory to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	dir, _ := cmd.Flags().GetString("dir")

	fs := http.FileServer(http.Dir(dir))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"remote": r.RemoteAddr,
		}).Info("request")
		fs.ServeHTTP(w, r)
	})

	log.Infof("serving %s on %s", dir, addr)
	return http.ListenAndServe(addr, handler)
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hzkconv version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
