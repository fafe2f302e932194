package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"webguard/internal/inspector"
	"webguard/internal/worker"
	"webguard/pkg/domain"
	"webguard/pkg/logger"

	mockinspector "webguard/internal/inspector/mock"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, change domain.SettingChange) *river.Job[inspector.SettingChangedArgs] {
	return &river.Job[inspector.SettingChangedArgs]{
		JobRow: &rivertype.JobRow{ID: id, Attempt: 1},
		Args:   inspector.SettingChangedArgs{Change: change},
	}
}

func testChange(key domain.SettingKey) domain.SettingChange {
	return domain.SettingChange{
		UserID:    domain.UserID(uuid.New()),
		Key:       key,
		Value:     true,
		ChangedAt: time.Now().UTC(),
	}
}

func TestSettingChangedWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mock := mockinspector.NewMockInspector(ctrl)
	w := worker.NewSettingChangedWorker(mock)

	change := testChange(domain.SettingContentFilter)
	mock.EXPECT().PublishSettingChange(gomock.Any(), change).Return(nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, change)))
}

func TestSettingChangedWorker_Work_PublishErrorRetries(t *testing.T) {
	ctrl := gomock.NewController(t)

	mock := mockinspector.NewMockInspector(ctrl)
	w := worker.NewSettingChangedWorker(mock)

	change := testChange(domain.SettingShortenerAlert)
	mock.EXPECT().PublishSettingChange(gomock.Any(), change).Return(errors.New("redis down"))

	err := w.Work(context.Background(), makeJob(2, change))
	require.ErrorContains(t, err, "redis down")
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
}

func TestSettingChangedWorker_Work_UnknownKeyCancels(t *testing.T) {
	ctrl := gomock.NewController(t)

	mock := mockinspector.NewMockInspector(ctrl)
	w := worker.NewSettingChangedWorker(mock)

	err := w.Work(context.Background(), makeJob(3, testChange("darkMode")))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestSettingChangedWorker_Timeout(t *testing.T) {
	w := worker.NewSettingChangedWorker(nil)
	require.Equal(t, 10*time.Second, w.Timeout(makeJob(4, domain.SettingChange{})))
}
