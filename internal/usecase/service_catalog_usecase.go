package usecase

import (
	"context"
	"strings"

	"clinic-admin/internal/converter"
	"clinic-admin/internal/delivery/dto"
	"clinic-admin/internal/domain/entity"
	"clinic-admin/internal/domain/repository"
	"clinic-admin/pkg/apperror"
	"clinic-admin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceCategoryNotFound   = apperror.NotFound("service category not found")
	ErrServiceCategoryCodeExists = apperror.Conflict("service category code already exists")
	ErrMedicalServiceNotFound    = apperror.NotFound("medical service not found")
	ErrMedicalServiceCodeExists  = apperror.Conflict("medical service code already exists")
	ErrNegativePrice             = apperror.Validation("price must not be negative")
)

// ServiceCatalogUsecase manages service categories and the priced services inside them.
type ServiceCatalogUsecase interface {
	CreateCategory(ctx context.Context, by uuid.UUID, req *dto.CreateServiceCategoryRequest) (*dto.ServiceCategoryResponse, error)
	GetAllCategories(ctx context.Context, query *dto.CatalogQuery) ([]dto.ServiceCategoryResponse, int64, error)
	GetCategory(ctx context.Context, id int) (*dto.ServiceCategoryResponse, error)
	UpdateCategory(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateServiceCategoryRequest) (*dto.ServiceCategoryResponse, error)
	DeleteCategory(ctx context.Context, by uuid.UUID, id int) error
	RestoreCategory(ctx context.Context, by uuid.UUID, id int) error

	CreateService(ctx context.Context, by uuid.UUID, req *dto.CreateMedicalServiceRequest) (*dto.MedicalServiceResponse, error)
	GetAllServices(ctx context.Context, query *dto.CatalogQuery) ([]dto.MedicalServiceResponse, int64, error)
	GetService(ctx context.Context, id int) (*dto.MedicalServiceResponse, error)
	UpdateService(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateMedicalServiceRequest) (*dto.MedicalServiceResponse, error)
	DeleteService(ctx context.Context, by uuid.UUID, id int) error
	RestoreService(ctx context.Context, by uuid.UUID, id int) error
}

type serviceCatalogUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
	categoryRepo   repository.ServiceCategoryRepository
	serviceRepo    repository.MedicalServiceRepository
}

func NewServiceCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	categoryRepo repository.ServiceCategoryRepository,
	serviceRepo repository.MedicalServiceRepository,
) ServiceCatalogUsecase {
	return &serviceCatalogUsecase{
		db:             db,
		log:            log,
		departmentRepo: departmentRepo,
		categoryRepo:   categoryRepo,
		serviceRepo:    serviceRepo,
	}
}

func (u *serviceCatalogUsecase) CreateCategory(ctx context.Context, by uuid.UUID, req *dto.CreateServiceCategoryRequest) (*dto.ServiceCategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireDepartment(tx, req.DepartmentID); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := u.categoryRepo.ExistsByCode(tx, code, 0)
	if err != nil {
		u.log.Warnf("Failed to check service category code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrServiceCategoryCodeExists
	}

	category := &entity.ServiceCategory{
		DepartmentID: req.DepartmentID,
		Title:        strings.TrimSpace(req.Title),
		Code:         code,
		Description:  req.Description,
		IsActive:     boolOr(req.IsActive, true),
	}
	category.StampCreate(actor(by))

	if err := u.categoryRepo.Create(tx, category); err != nil {
		u.log.Warnf("Failed to create service category: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ServiceCategoryToResponse(category), nil
}

func (u *serviceCatalogUsecase) GetAllCategories(ctx context.Context, query *dto.CatalogQuery) ([]dto.ServiceCategoryResponse, int64, error) {
	page := pagination.New(query.Page, query.Limit)
	categories, total, err := u.categoryRepo.FindAll(u.db.WithContext(ctx), catalogFilter(query, page))
	if err != nil {
		u.log.Warnf("Failed to find service categories: %+v", err)
		return nil, 0, err
	}
	return converter.ServiceCategoriesToResponses(categories), total, nil
}

func (u *serviceCatalogUsecase) GetCategory(ctx context.Context, id int) (*dto.ServiceCategoryResponse, error) {
	category, err := u.categoryRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service category: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrServiceCategoryNotFound
	}
	return converter.ServiceCategoryToResponse(category), nil
}

func (u *serviceCatalogUsecase) UpdateCategory(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateServiceCategoryRequest) (*dto.ServiceCategoryResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service category: %+v", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrServiceCategoryNotFound
	}

	if req.DepartmentID != nil && *req.DepartmentID != category.DepartmentID {
		if err := u.requireDepartment(tx, *req.DepartmentID); err != nil {
			return nil, err
		}
		category.DepartmentID = *req.DepartmentID
		category.Department = nil
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		exists, err := u.categoryRepo.ExistsByCode(tx, code, id)
		if err != nil {
			u.log.Warnf("Failed to check service category code: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrServiceCategoryCodeExists
		}
		category.Code = code
	}
	setString(&category.Title, req.Title)
	setString(&category.Description, req.Description)
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.StampUpdate(actor(by))

	if err := u.categoryRepo.Update(tx, category); err != nil {
		u.log.Warnf("Failed to update service category: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ServiceCategoryToResponse(category), nil
}

func (u *serviceCatalogUsecase) DeleteCategory(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.categoryRepo.SoftDelete(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to delete service category: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrServiceCategoryNotFound
	}
	return nil
}

func (u *serviceCatalogUsecase) RestoreCategory(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.categoryRepo.Restore(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to restore service category: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNothingToRestore
	}
	return nil
}

func (u *serviceCatalogUsecase) CreateService(ctx context.Context, by uuid.UUID, req *dto.CreateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.requireCategory(tx, req.ServiceCategoryID); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	exists, err := u.serviceRepo.ExistsByCode(tx, code, 0)
	if err != nil {
		u.log.Warnf("Failed to check medical service code: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrMedicalServiceCodeExists
	}

	medicalService := &entity.MedicalService{
		ServiceCategoryID: req.ServiceCategoryID,
		Title:             strings.TrimSpace(req.Title),
		Code:              code,
		Price:             req.Price.Round(2),
		IsActive:          boolOr(req.IsActive, true),
	}
	medicalService.StampCreate(actor(by))

	if err := u.serviceRepo.Create(tx, medicalService); err != nil {
		u.log.Warnf("Failed to create medical service: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalServiceToResponse(medicalService), nil
}

func (u *serviceCatalogUsecase) GetAllServices(ctx context.Context, query *dto.CatalogQuery) ([]dto.MedicalServiceResponse, int64, error) {
	page := pagination.New(query.Page, query.Limit)
	services, total, err := u.serviceRepo.FindAll(u.db.WithContext(ctx), catalogFilter(query, page))
	if err != nil {
		u.log.Warnf("Failed to find medical services: %+v", err)
		return nil, 0, err
	}
	return converter.MedicalServicesToResponses(services), total, nil
}

func (u *serviceCatalogUsecase) GetService(ctx context.Context, id int) (*dto.MedicalServiceResponse, error) {
	medicalService, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical service: %+v", err)
		return nil, err
	}
	if medicalService == nil {
		return nil, ErrMedicalServiceNotFound
	}
	return converter.MedicalServiceToResponse(medicalService), nil
}

func (u *serviceCatalogUsecase) UpdateService(ctx context.Context, by uuid.UUID, id int, req *dto.UpdateMedicalServiceRequest) (*dto.MedicalServiceResponse, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicalService, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medical service: %+v", err)
		return nil, err
	}
	if medicalService == nil {
		return nil, ErrMedicalServiceNotFound
	}

	if req.ServiceCategoryID != nil && *req.ServiceCategoryID != medicalService.ServiceCategoryID {
		if err := u.requireCategory(tx, *req.ServiceCategoryID); err != nil {
			return nil, err
		}
		medicalService.ServiceCategoryID = *req.ServiceCategoryID
		medicalService.ServiceCategory = nil
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		exists, err := u.serviceRepo.ExistsByCode(tx, code, id)
		if err != nil {
			u.log.Warnf("Failed to check medical service code: %+v", err)
			return nil, err
		}
		if exists {
			return nil, ErrMedicalServiceCodeExists
		}
		medicalService.Code = code
	}
	setString(&medicalService.Title, req.Title)
	if req.Price != nil {
		medicalService.Price = req.Price.Round(2)
	}
	if req.IsActive != nil {
		medicalService.IsActive = *req.IsActive
	}
	medicalService.StampUpdate(actor(by))

	if err := u.serviceRepo.Update(tx, medicalService); err != nil {
		u.log.Warnf("Failed to update medical service: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalServiceToResponse(medicalService), nil
}

func (u *serviceCatalogUsecase) DeleteService(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.serviceRepo.SoftDelete(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to delete medical service: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrMedicalServiceNotFound
	}
	return nil
}

func (u *serviceCatalogUsecase) RestoreService(ctx context.Context, by uuid.UUID, id int) error {
	affected, err := u.serviceRepo.Restore(u.db.WithContext(ctx), id, actor(by))
	if err != nil {
		u.log.Warnf("Failed to restore medical service: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNothingToRestore
	}
	return nil
}

func (u *serviceCatalogUsecase) requireDepartment(tx *gorm.DB, id int) error {
	department, err := u.departmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}
	return nil
}

func (u *serviceCatalogUsecase) requireCategory(tx *gorm.DB, id int) error {
	category, err := u.categoryRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service category: %+v", err)
		return err
	}
	if category == nil {
		return ErrServiceCategoryNotFound
	}
	return nil
}

func catalogFilter(query *dto.CatalogQuery, page pagination.Params) *entity.ServiceCategoryFilter {
	return &entity.ServiceCategoryFilter{
		Search:       strings.TrimSpace(query.Search),
		DepartmentID: query.DepartmentID,
		IsActive:     query.IsActive,
		Limit:        page.Limit,
		Offset:       page.Offset(),
	}
}
