package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/karalabe/hid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"kbscreen/pkg/conf"
	"kbscreen/pkg/device"
	"kbscreen/pkg/device/virtual"
	"kbscreen/pkg/packet"
	"kbscreen/pkg/proto"
	"kbscreen/pkg/screen"
)

const (
	exitOK = iota
	exitUsage
	exitNormalize
	exitOpen
	exitWrite
)

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsage
	}

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	fs := afero.NewOsFs()

	var err error
	switch args[0] {
	case "upload-image":
		err = uploadImage(fs, logger, args[1:])
	case "upload-text":
		err = uploadText(fs, logger, args[1:])
	case "upload-animation":
		err = uploadAnimation(fs, logger, args[1:])
	case "set-time":
		err = setTime(fs, logger, args[1:])
	case "dev":
		err = devTools(fs, args[1:])
	default:
		usage()
		return exitUsage
	}

	if err == nil {
		return exitOK
	}

	fmt.Fprintln(os.Stderr, err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, screen.ErrUnsupportedFormat),
		errors.Is(err, screen.ErrEmptyInput),
		errors.Is(err, packet.ErrSizeMismatch),
		errors.Is(err, os.ErrNotExist):
		return exitNormalize
	case errors.Is(err, proto.ErrNotFound):
		return exitOpen
	default:
		return exitWrite
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: kbscreen <command> [flags]

commands:
  upload-image <path>      upload an image to the keyboard screen
  upload-text <text...>    render text and upload it
  upload-animation <dir>   upload every frame image found in a directory
  set-time                 push the wall clock to the status line
  dev                      diagnostics (--print, --udev)
`)
}

func parse(fl *flag.FlagSet, args []string) error {
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errUsage, err.Error())
	}
	return nil
}

// common flags shared by the upload commands
type uploadFlags struct {
	conf   *string
	dryRun *bool
	quiet  *bool
}

func addUploadFlags(fl *flag.FlagSet) uploadFlags {
	return uploadFlags{
		conf:   fl.String("conf", "", "config file path"),
		dryRun: fl.Bool("dry-run", false, "log packets instead of sending"),
		quiet:  fl.Bool("quiet", false, "disable the progress bar"),
	}
}

func openKeyboard(fs afero.Fs, logger *zap.Logger, uf uploadFlags) (*device.Keyboard, error) {
	cfg, err := conf.Load(fs, *uf.conf)
	if err != nil {
		return nil, err
	}

	if *uf.dryRun {
		return device.New(virtual.Mock(logger), cfg, logger), nil
	}

	link := proto.NewHID(&proto.Options{
		VendorID:   cfg.VendorID,
		ProductIDs: cfg.ProductIDs,
		UsagePage:  cfg.UsagePage,
		Usage:      cfg.Usage,
	})
	if err := link.Open(); err != nil {
		return nil, err
	}

	kb := device.New(link, cfg, logger)
	kb.Progress = !*uf.quiet
	return kb, nil
}

func decodeFile(fs afero.Fs, path string) (image.Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer func() { _ = f.Close() }()

	return screen.Decode(f)
}

func uploadImage(fs afero.Fs, logger *zap.Logger, args []string) error {
	fl := flag.NewFlagSet("upload-image", flag.ContinueOnError)
	uf := addUploadFlags(fl)
	if err := parse(fl, args); err != nil {
		return err
	}
	if fl.NArg() != 1 {
		return errors.Wrap(errUsage, "upload-image needs exactly one image path")
	}

	// Decode before touching the device: bad input must never open it.
	img, err := decodeFile(fs, fl.Arg(0))
	if err != nil {
		return err
	}

	kb, err := openKeyboard(fs, logger, uf)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	return kb.UploadImage(img)
}

func uploadText(fs afero.Fs, logger *zap.Logger, args []string) error {
	fl := flag.NewFlagSet("upload-text", flag.ContinueOnError)
	uf := addUploadFlags(fl)
	align := fl.String("align", "center", "text alignment: left|center|right")
	colorFlag := fl.String("color", "0,0,255", "text color as R,G,B")
	if err := parse(fl, args); err != nil {
		return err
	}
	if fl.NArg() == 0 {
		return errors.Wrap(errUsage, "upload-text needs text to display")
	}

	al, err := screen.ParseAlign(*align)
	if err != nil {
		return errors.Wrap(errUsage, err.Error())
	}

	col, err := parseColor(*colorFlag)
	if err != nil {
		return err
	}

	kb, err := openKeyboard(fs, logger, uf)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	text := strings.Join(fl.Args(), " ")
	return kb.UploadText([]screen.Segment{{Text: text, Color: col}}, al)
}

func parseColor(s string) (color.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errUsage, "color %q must be R,G,B", s)
	}

	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return nil, errors.Wrapf(errUsage, "color channel %q out of range", p)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xFF}, nil
}

var frameExts = []string{".png", ".jpg", ".jpeg", ".gif"}

func uploadAnimation(fs afero.Fs, logger *zap.Logger, args []string) error {
	fl := flag.NewFlagSet("upload-animation", flag.ContinueOnError)
	uf := addUploadFlags(fl)
	if err := parse(fl, args); err != nil {
		return err
	}
	if fl.NArg() != 1 {
		return errors.Wrap(errUsage, "upload-animation needs a frame directory")
	}

	dir := fl.Arg(0)
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return errors.Wrap(err, "read frame dir")
	}

	names := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		return e.Name(), lo.Contains(frameExts, ext)
	})
	if len(names) == 0 {
		return errors.Wrapf(screen.ErrEmptyInput, "no frame images in %s", dir)
	}
	sort.Strings(names)

	frames := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := decodeFile(fs, filepath.Join(dir, name))
		if err != nil {
			return errors.Wrap(err, name)
		}
		frames = append(frames, img)
	}

	kb, err := openKeyboard(fs, logger, uf)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	return kb.UploadFrames(frames)
}

func setTime(fs afero.Fs, logger *zap.Logger, args []string) error {
	fl := flag.NewFlagSet("set-time", flag.ContinueOnError)
	uf := addUploadFlags(fl)
	if err := parse(fl, args); err != nil {
		return err
	}

	kb, err := openKeyboard(fs, logger, uf)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	return kb.SetTime(time.Now())
}

type deviceInfo struct {
	Path      string `json:"path"`
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
	Product   string `json:"product"`
	UsagePage uint16 `json:"usage_page"`
	Usage     uint16 `json:"usage"`
	Interface int    `json:"interface"`
}

func devTools(fs afero.Fs, args []string) error {
	fl := flag.NewFlagSet("dev", flag.ContinueOnError)
	printInfo := fl.Bool("print", false, "print matching HID devices")
	genUdev := fl.Bool("udev", false, "write a udev rule for the keyboard")
	rulePath := fl.String("rule-path", "/etc/udev/rules.d/99-kbscreen.rules", "udev rule destination")
	confPath := fl.String("conf", "", "config file path")
	if err := parse(fl, args); err != nil {
		return err
	}

	cfg, err := conf.Load(fs, *confPath)
	if err != nil {
		return err
	}

	switch {
	case *printInfo:
		link := proto.NewHID(&proto.Options{
			VendorID:   cfg.VendorID,
			ProductIDs: cfg.ProductIDs,
		})
		infos := link.Devices()
		if len(infos) == 0 {
			return proto.ErrNotFound
		}

		out := lo.Map(infos, func(d hid.DeviceInfo, _ int) deviceInfo {
			return deviceInfo{
				Path:      d.Path,
				VendorID:  fmt.Sprintf("0x%04x", d.VendorID),
				ProductID: fmt.Sprintf("0x%04x", d.ProductID),
				Product:   d.Product,
				UsagePage: d.UsagePage,
				Usage:     d.Usage,
				Interface: d.Interface,
			}
		})
		bs, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(bs))
		return nil

	case *genUdev:
		var sb strings.Builder
		sb.WriteString("# keyboard screen\n")
		for _, pid := range cfg.ProductIDs {
			fmt.Fprintf(&sb,
				"SUBSYSTEM==\"usb\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", MODE=\"0666\", GROUP=\"plugdev\"\n",
				cfg.VendorID, pid)
		}
		if err := afero.WriteFile(fs, *rulePath, []byte(sb.String()), 0644); err != nil {
			return errors.Wrap(err, "write udev rule")
		}
		fmt.Println("rule written to", *rulePath)
		return nil
	}

	return errors.Wrap(errUsage, "dev needs --print or --udev")
}
