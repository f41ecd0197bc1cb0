package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"labreserve/internal/auth"
	apperrors "labreserve/internal/errors"
	"labreserve/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestLabService_CreateLab(t *testing.T) {
	tests := []struct {
		name          string
		actor         auth.Identity
		input         LabInput
		setupMock     func(*MockLabRepository)
		expectedError error
	}{
		{
			name:  "admin creates lab",
			actor: adminActor,
			input: LabInput{Name: "Physics Lab", Location: "Building B", Capacity: 20},
			setupMock: func(m *MockLabRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Lab")).Return(nil)
			},
		},
		{
			name:  "explicit unavailable flag is kept",
			actor: adminActor,
			input: LabInput{Name: "Physics Lab", Location: "Building B", Capacity: 20, Available: boolPtr(false)},
			setupMock: func(m *MockLabRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Lab) bool {
					return !l.Available
				})).Return(nil)
			},
		},
		{
			name:          "faculty may not create",
			actor:         facultyActor,
			input:         LabInput{Name: "Physics Lab", Location: "Building B", Capacity: 20},
			setupMock:     func(m *MockLabRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "missing required fields",
			actor:         adminActor,
			input:         LabInput{Name: "Physics Lab"},
			setupMock:     func(m *MockLabRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockLabRepository)
			tt.setupMock(mockRepo)

			svc := NewLabService(mockRepo, nil)
			lab, err := svc.CreateLab(context.Background(), tt.actor, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, lab)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, lab)
				assert.Equal(t, tt.input.Name, lab.Name)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLabService_UpdateLab(t *testing.T) {
	t.Run("partial update keeps unset fields", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Lab{
			ID: 1, Name: "Chemistry Lab", Location: "Building A", Capacity: 30, Available: true,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Lab")).Return(nil)

		svc := NewLabService(mockRepo, nil)
		lab, err := svc.UpdateLab(context.Background(), adminActor, 1, LabInput{Capacity: 40})

		assert.NoError(t, err)
		assert.Equal(t, "Chemistry Lab", lab.Name)
		assert.Equal(t, 40, lab.Capacity)
		assert.True(t, lab.Available)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewLabService(mockRepo, nil)
		_, err := svc.UpdateLab(context.Background(), adminActor, 99, LabInput{Capacity: 40})

		assert.ErrorIs(t, err, apperrors.ErrLabNotFound)
	})

	t.Run("faculty forbidden", func(t *testing.T) {
		svc := NewLabService(new(MockLabRepository), nil)
		_, err := svc.UpdateLab(context.Background(), facultyActor, 1, LabInput{Capacity: 40})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestLabService_DeleteLab(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewLabService(mockRepo, nil)
		assert.NoError(t, svc.DeleteLab(context.Background(), adminActor, 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("Delete", mock.Anything, uint(99)).Return(gorm.ErrRecordNotFound)

		svc := NewLabService(mockRepo, nil)
		assert.ErrorIs(t, svc.DeleteLab(context.Background(), adminActor, 99), apperrors.ErrLabNotFound)
	})

	t.Run("faculty forbidden", func(t *testing.T) {
		svc := NewLabService(new(MockLabRepository), nil)
		assert.ErrorIs(t, svc.DeleteLab(context.Background(), facultyActor, 1), apperrors.ErrForbidden)
	})
}

func TestLabService_GetLab(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(openLab(), nil)

		svc := NewLabService(mockRepo, nil)
		lab, err := svc.GetLab(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "Chemistry Lab", lab.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockLabRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewLabService(mockRepo, nil)
		_, err := svc.GetLab(context.Background(), 99)

		assert.ErrorIs(t, err, apperrors.ErrLabNotFound)
	})
}
