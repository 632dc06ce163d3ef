package card

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lingqianapp/lingqian/pkg/errors"
	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// fakeFaces is a FaceSource with fixed per-rune metrics, so layout tests
// run without any fonts installed on the host.
type fakeFaces struct {
	advance float64
	err     error
}

func (f fakeFaces) Face(_ i18n.Language, _ FontSpec) (font.Face, error) {
	if f.err != nil {
		return nil, f.err
	}
	return basicfont.Face7x13, nil
}

func (f fakeFaces) Measure(_ i18n.Language, _ FontSpec) (MeasureFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	return fixedMeasure(f.advance), nil
}

func testRequest() RenderRequest {
	return RenderRequest{
		Sign: sign.Record{
			ID:           "qian-01",
			LuckIndex:    "★★★★★",
			ProphecyText: "云开月出正分明\n不须进退问前程",
			FortuneText:  "凡事皆吉，谋望有成。",
			SummaryText:  "大吉",
		},
		Language: i18n.LangZH,
		DrawnAt:  time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC),
	}
}

func testGeometry() Geometry {
	geo := DefaultGeometry()
	geo.MinHeight = 0 // keep height assertions independent of the floor
	return geo
}

func TestBuildPlanBlockOrder(t *testing.T) {
	plan, err := BuildPlan(testRequest(), fakeFaces{advance: 18}, testGeometry())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	want := []Kind{KindTitle, KindRequest, KindDate, KindLuck, KindSectionTitle, KindBody, KindSectionTitle, KindBody, KindSummary, KindQR}
	if len(plan.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(plan.Blocks), len(want))
	}
	for i, b := range plan.Blocks {
		if b.Kind != want[i] {
			t.Errorf("block %d kind = %v, want %v", i, b.Kind, want[i])
		}
	}
}

func TestBuildPlanHeightAgreement(t *testing.T) {
	geo := testGeometry()
	plan, err := BuildPlan(testRequest(), fakeFaces{advance: 18}, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	// Replaying the blocks' offsets must land exactly on ContentBottom.
	y := geo.TopPadding
	for _, b := range plan.Blocks {
		y += blockStyles[b.Kind].spaceBefore
		if b.StartY != y {
			t.Errorf("%v StartY = %v, want %v", b.Kind, b.StartY, y)
		}
		y += b.Height
	}
	if plan.ContentBottom != y {
		t.Errorf("ContentBottom = %v, want %v", plan.ContentBottom, y)
	}
	if plan.TotalHeight != plan.ContentBottom+geo.BottomPadding {
		t.Errorf("TotalHeight = %v, want ContentBottom+BottomPadding = %v",
			plan.TotalHeight, plan.ContentBottom+geo.BottomPadding)
	}
}

func TestBuildPlanEmptyRequestReservesSpacing(t *testing.T) {
	geo := testGeometry()
	faces := fakeFaces{advance: 18}

	withReq := testRequest()
	withReq.UserRequest = "问前程"
	withPlan, err := BuildPlan(withReq, faces, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	without := testRequest()
	without.UserRequest = ""
	withoutPlan, err := BuildPlan(without, faces, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	// An empty request wraps to zero lines but keeps its spaceBefore, so
	// the two cards differ by exactly one request line height.
	diff := withPlan.TotalHeight - withoutPlan.TotalHeight
	if want := blockStyles[KindRequest].lineHeight(); diff != want {
		t.Errorf("height difference = %v, want one request line height %v", diff, want)
	}
}

func TestBuildPlanMinHeightFloor(t *testing.T) {
	geo := DefaultGeometry()
	geo.MinHeight = 5000

	plan, err := BuildPlan(testRequest(), fakeFaces{advance: 18}, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	if plan.TotalHeight != geo.MinHeight {
		t.Errorf("TotalHeight = %v, want floor %v", plan.TotalHeight, geo.MinHeight)
	}
	if plan.ContentBottom+geo.BottomPadding > geo.MinHeight {
		t.Errorf("content %v overflows the floor %v", plan.ContentBottom+geo.BottomPadding, geo.MinHeight)
	}
}

func TestBuildPlanParagraphsWrapIndependently(t *testing.T) {
	geo := testGeometry()
	faces := fakeFaces{advance: 18}

	req := testRequest()
	req.Sign.ProphecyText = "云开月出正分明不须进退问前程\n婚姻皆由天注定和合清吉万事成"

	plan, err := BuildPlan(req, faces, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	var body Block
	for _, b := range plan.Blocks {
		if b.Kind == KindBody {
			body = b
			break
		}
	}

	// The block's lines are the two paragraphs wrapped on their own,
	// concatenated; no line mixes characters from both.
	paras := strings.Split(req.Sign.ProphecyText, "\n")
	var want []string
	for _, p := range paras {
		want = append(want, Wrap(p, geo.ContentWidth(), fixedMeasure(18))...)
	}
	if len(body.Lines) != len(want) {
		t.Fatalf("body lines = %v, want %v", body.Lines, want)
	}
	for i := range want {
		if body.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, body.Lines[i], want[i])
		}
	}
	if want := float64(len(body.Lines)) * body.LineHeight; body.Height != want {
		t.Errorf("body height = %v, want %v", body.Height, want)
	}
}

func TestBuildPlanNoDataPlaceholder(t *testing.T) {
	req := testRequest()
	req.Sign.ProphecyText = ""
	req.Sign.SummaryText = ""

	plan, err := BuildPlan(req, fakeFaces{advance: 18}, testGeometry())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	noData := i18n.Text(nil, i18n.LangZH, i18n.KeyNoData)
	if got := plan.Blocks[5].Lines; len(got) != 1 || got[0] != noData {
		t.Errorf("empty prophecy lines = %v, want [%q]", got, noData)
	}
	if got := plan.Blocks[8].Lines; len(got) != 1 || got[0] != noData {
		t.Errorf("empty summary lines = %v, want [%q]", got, noData)
	}
}

func TestBuildPlanDateStamp(t *testing.T) {
	req := testRequest()
	plan, err := BuildPlan(req, fakeFaces{advance: 18}, testGeometry())
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	want := i18n.FormatDate(i18n.LangZH, req.DrawnAt)
	if got := plan.Blocks[2].Lines; len(got) != 1 || got[0] != want {
		t.Errorf("date lines = %v, want [%q]", got, want)
	}
}

func TestBuildPlanQRReservation(t *testing.T) {
	geo := testGeometry()
	plan, err := BuildPlan(testRequest(), fakeFaces{advance: 18}, geo)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	qr, ok := plan.QRBlock()
	if !ok {
		t.Fatal("plan has no QR block")
	}
	if qr.Height != geo.QRSize {
		t.Errorf("QR height = %v, want %v", qr.Height, geo.QRSize)
	}
	if plan.Blocks[len(plan.Blocks)-1].Kind != KindQR {
		t.Error("QR block is not last")
	}
}

func TestBuildPlanMeasureError(t *testing.T) {
	src := fakeFaces{err: errors.New(errors.ErrCodeFontUnavailable, "no fonts")}
	if _, err := BuildPlan(testRequest(), src, testGeometry()); err == nil {
		t.Fatal("BuildPlan() with failing source: expected error")
	}
}
