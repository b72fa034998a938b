package service

import (
	"context"
	"errors"

	"feedback_flow_v1_202608/internal/api/dto"
	"feedback_flow_v1_202608/internal/model"
	"feedback_flow_v1_202608/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== TesterService 测试员服务 ====================

// TesterService 测试员服务
type TesterService struct {
	testerRepo  repository.TesterRepository
	mappingRepo repository.IDMappingRepository
}

// NewTesterService 创建测试员服务
func NewTesterService(testerRepo repository.TesterRepository, mappingRepo repository.IDMappingRepository) *TesterService {
	return &TesterService{
		testerRepo:  testerRepo,
		mappingRepo: mappingRepo,
	}
}

// ==================== 创建 ====================

// Create 创建测试员
// 任何一个外部身份已被占用即整体拒绝；测试员和映射在同一事务内落库，
// 失败（包括与并发创建撞上唯一约束）时不落任何数据
func (s *TesterService) Create(ctx context.Context, req *dto.CreateTesterRequest) (*model.Tester, error) {
	ids := dedupeIDs(req.IDs)

	for _, id := range ids {
		exists, err := s.mappingRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateID
		}
	}

	tester := &model.Tester{
		UUID: uuid.NewString(),
		Name: req.Name,
		IDs:  ids,
	}
	mappings := make([]*model.IDMapping, 0, len(ids))
	for _, id := range ids {
		mappings = append(mappings, &model.IDMapping{ExternalID: id, TesterUUID: tester.UUID})
	}

	if err := s.testerRepo.CreateWithMappings(ctx, tester, mappings); err != nil {
		// 测试员主键是新生成的 UUID，唯一约束冲突只可能来自映射
		if isUniqueViolation(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}

	return tester, nil
}

// dedupeIDs 同一请求里重复出现的身份只取一次，保持原有顺序
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ==================== 追加身份 ====================

// AddID 给已有测试员（按名字定位）追加外部身份
// 身份已存在（无论挂在谁名下）返回 ErrDuplicateID
func (s *TesterService) AddID(ctx context.Context, name, externalID string) (*model.Tester, error) {
	tester, err := s.testerRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTesterNotFound
		}
		return nil, err
	}

	exists, err := s.mappingRepo.Exists(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateID
	}

	tester.IDs = append(tester.IDs, externalID)
	if err := s.testerRepo.AppendMapping(ctx, tester, &model.IDMapping{
		ExternalID: externalID,
		TesterUUID: tester.UUID,
	}); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}

	return tester, nil
}

// ==================== 查询 ====================

// List 测试员列表（排序字段走白名单）
func (s *TesterService) List(ctx context.Context, req *dto.ListTestersRequest) ([]dto.TesterVO, int64, error) {
	testers, total, err := s.testerRepo.List(ctx, repository.TesterFilter{
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
		Page:     req.Page,
		PageSize: req.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	vos := make([]dto.TesterVO, 0, len(testers))
	for _, t := range testers {
		vos = append(vos, dto.TesterVO{
			UUID:      t.UUID,
			Name:      t.Name,
			IDs:       t.IDs,
			CreatedAt: t.CreatedAt,
		})
	}
	return vos, total, nil
}

// ResolveBySubject 按调用者外部身份（JWT sub）解析测试员
func (s *TesterService) ResolveBySubject(ctx context.Context, subject string) (*model.Tester, error) {
	testerUUID, err := s.mappingRepo.ResolveTesterUUID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if testerUUID == "" {
		return nil, ErrTesterNotFound
	}

	tester, err := s.testerRepo.GetByUUID(ctx, testerUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTesterNotFound
		}
		return nil, err
	}
	return tester, nil
}

// ==================== 删除 ====================

// Delete 删除测试员，身份映射在仓库事务里一并清理
func (s *TesterService) Delete(ctx context.Context, testerUUID string) error {
	if _, err := s.testerRepo.GetByUUID(ctx, testerUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTesterNotFound
		}
		return err
	}
	return s.testerRepo.Delete(ctx, testerUUID)
}
