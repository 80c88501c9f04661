package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
	"github.com/OpenTraceLab/xnetlist/pkg/xnet"
)

// board wires host H to X on N10, Z on N1 and, through the two-pin part
// T, to Y via M on N2.
var board = strings.Join([]string{
	"NET_NAME", "'N10'",
	"NODE_NAME H 3", "x", "'h3'",
	"NODE_NAME X 1", "x", "'x'",
	"NET_NAME", "'N1'",
	"NODE_NAME H 1", "x", "'h1'",
	"NODE_NAME Z 1", "x", "'z, with comma'",
	"NET_NAME", "'N2'",
	"NODE_NAME H 2", "x", "'h2'",
	"NODE_NAME T 1", "x", "'t1'",
	"NET_NAME", "'M'",
	"NODE_NAME T 2", "x", "'t2'",
	"NODE_NAME Y 1", "x", "'y'",
	"END.",
}, "\n") + "\n"

var _ = Describe("Run", func() {
	var cfg *Config

	BeforeEach(func() {
		cfg = DefaultConfig()
		cfg.HostChip = "H"
	})

	run := func() (*Result, error) {
		return Run(cfg, strings.NewReader(board), logr.Discard())
	}

	It("reports the far end of each host net through transparent chips", func() {
		cfg.TransparentPatterns = []string{"T"}

		res, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Nets).To(Equal([]string{"N10", "N1", "N2"}))
		Expect(res.Rows).To(Equal([]netlist.Row{
			{Net: "N10", HostDesc: "h3", ClientChip: "X", ClientDesc: "x"},
			{Net: "N1", HostDesc: "h1", ClientChip: "Z", ClientDesc: "z, with comma"},
			{Net: "N2", HostDesc: "h2", ClientChip: "Y", ClientDesc: "y"},
		}))
		Expect(res.Stats).To(Equal(Stats{
			Nodes:      8,
			Nets:       4,
			Chips:      5,
			Complete:   true,
			Eliminated: 1,
			Rows:       3,
		}))
	})

	It("reports the pass-through chip itself when it is not transparent", func() {
		res, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rows[2].ClientChip).To(Equal("T"))
		Expect(res.Stats.Eliminated).To(BeZero())
	})

	It("filters nets by a pattern anchored at the start of the name", func() {
		cfg.NetPattern = "N1"

		res, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Nets).To(Equal([]string{"N10", "N1"}))

		cfg.NetPattern = "0"
		res, err = run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rows).To(BeEmpty())
	})

	It("fails with ErrNotFound for an unknown host chip", func() {
		cfg.HostChip = "U99"

		_, err := run()
		Expect(errors.Is(err, netlist.ErrNotFound)).To(BeTrue())
	})

	It("produces nothing without a host chip", func() {
		cfg.HostChip = ""

		res, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rows).To(BeEmpty())
		Expect(res.Nets).To(BeEmpty())
	})

	It("rejects invalid patterns", func() {
		cfg.TransparentPatterns = []string{"R("}

		_, err := run()
		Expect(err).To(HaveOccurred())
	})

	It("fails on ambiguous nets only in strict mode", func() {
		input := strings.Replace(board, "END.", "NET_NAME\n'N1'\nNODE_NAME W 1\nx\n'w'\nEND.", 1)

		res, err := Run(cfg, strings.NewReader(input), logr.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rows[1].ClientChip).To(Equal("Z"))

		cfg.Strict = true
		_, err = Run(cfg, strings.NewReader(input), logr.Discard())
		Expect(errors.Is(err, netlist.ErrAmbiguous)).To(BeTrue())
	})

	It("keeps partial results of a truncated netlist", func() {
		input := strings.Replace(board, "END.\n", "", 1)

		res, err := Run(cfg, strings.NewReader(input), logr.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Stats.Complete).To(BeFalse())
		Expect(errors.Is(res.Parse.Cause, xnet.ErrTruncated)).To(BeTrue())
		Expect(res.Rows).To(HaveLen(3))
	})
})

var _ = Describe("Load", func() {
	It("reduces every connected net when no host is given", func() {
		cfg := DefaultConfig()
		cfg.TransparentPatterns = []string{"T"}

		res, err := Load(cfg, strings.NewReader(board), logr.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Nets).To(Equal([]string{"N10", "N1", "N2", "M"}))
		Expect(res.Stats.Eliminated).To(Equal(1))

		m, err := res.Graph.Net("M")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Len()).To(BeZero())
	})
})

var _ = Describe("RunFile", func() {
	It("reads the netlist from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "pstxnet.dat")
		Expect(os.WriteFile(path, []byte(board), 0o644)).To(Succeed())

		cfg := DefaultConfig()
		cfg.HostChip = "H"
		res, err := RunFile(cfg, path, logr.Discard())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Rows).To(HaveLen(3))
	})

	It("fails when the input does not exist", func() {
		_, err := RunFile(DefaultConfig(), filepath.Join(GinkgoT().TempDir(), "nope.dat"), logr.Discard())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})

var _ = Describe("WriteCSV", func() {
	It("writes naturally sorted rows with standard quoting", func() {
		rows := []netlist.Row{
			{Net: "N10", HostDesc: "h3", ClientChip: "X", ClientDesc: "x"},
			{Net: "N1", HostDesc: "h1", ClientChip: "Z", ClientDesc: "z, with comma"},
			{Net: "N2", HostDesc: "h2", ClientChip: "Y", ClientDesc: `say "hi"`},
		}

		var buf bytes.Buffer
		Expect(WriteCSV(&buf, rows, logr.Discard())).To(Succeed())
		Expect(buf.String()).To(Equal(
			"N1,h1,Z,\"z, with comma\"\r\n" +
				"N2,h2,Y,\"say \"\"hi\"\"\"\r\n" +
				"N10,h3,X,x\r\n"))
		Expect(rows[0].Net).To(Equal("N10"), "input must not be reordered")
	})

	It("writes nothing for no rows", func() {
		var buf bytes.Buffer
		Expect(WriteCSV(&buf, nil, logr.Discard())).To(Succeed())
		Expect(buf.Len()).To(BeZero())
	})
})
