package task

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/internal/progress"
	"github.com/AscentLab/realm-ascent-backend/pkg/xp"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrTaskNotFound 表示指定的任务不存在或不属于该用户
	ErrTaskNotFound = errors.New("任务不存在")
	// ErrNoForwardProgress 表示进度更新没有推进任何单位。
	// 这不是失败，而是一次无副作用的跳过：不结算XP，不改变状态。
	ErrNoForwardProgress = errors.New("进度没有前进")
	// ErrArchiveIncompleteTask 表示试图归档一个尚未完成的任务
	ErrArchiveIncompleteTask = errors.New("只有已完成的任务才能归档")
)

// CreateTaskInput 是创建任务的服务层输入，字段已在请求边界完成枚举校验
type CreateTaskInput struct {
	Name        string
	Category    progress.Category
	Realm       Realm
	Deadline    *time.Time
	NotifyDays  int
	TotalLevels int
	Difficulty  xp.Difficulty
}

// UpdateTaskInput 是更新任务的服务层输入。
// nil指针表示对应字段保持不变。
type UpdateTaskInput struct {
	Name            *string
	Realm           *Realm
	Deadline        *time.Time
	NotifyDays      *int
	CompletedLevels *int
	Archived        *bool
}

// defaultNotifyDays 是未指定时的截止提醒窗口
const defaultNotifyDays = 7

// CreateTask 为用户创建一个新任务，初始状态为not_started、0个已完成单位。
func CreateTask(userID uint, input CreateTaskInput) (*Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成任务ID: %w", err)
	}

	notifyDays := input.NotifyDays
	if notifyDays <= 0 {
		notifyDays = defaultNotifyDays
	}

	newTask := Task{
		ID:          id.String(),
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		Realm:       input.Realm,
		Deadline:    input.Deadline,
		NotifyDays:  notifyDays,
		TotalLevels: input.TotalLevels,
		Difficulty:  input.Difficulty,
		Status:      StatusNotStarted,
	}
	if err := database.DB.Create(&newTask).Error; err != nil {
		return nil, fmt.Errorf("无法创建任务: %w", err)
	}
	return &newTask, nil
}

// GetTasks 返回用户的全部任务，按创建时间排序。
func GetTasks(userID uint) ([]Task, error) {
	var tasks []Task
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("无法查询任务列表: %w", err)
	}
	return tasks, nil
}

// GetTaskByID 按ID查询用户自己的任务。
func GetTaskByID(id string, userID uint) (*Task, error) {
	var t Task
	err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询任务: %w", err)
	}
	return &t, nil
}

// GetTasksByRealm 返回用户在指定主题领域下的全部任务。
func GetTasksByRealm(realm Realm, userID uint) ([]Task, error) {
	var tasks []Task
	err := database.DB.Where("realm = ? AND user_id = ?", realm, userID).
		Order("created_at asc").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询领域任务: %w", err)
	}
	return tasks, nil
}

// GetCautionTasks 返回截止时间落在各自提醒窗口内的未完成任务，按截止时间升序。
// 提醒窗口是每个任务自己的NotifyDays；已过期（截止时间早于现在）的任务不在列。
func GetCautionTasks(userID uint) ([]Task, error) {
	var candidates []Task
	err := database.DB.
		Where("user_id = ? AND deadline IS NOT NULL AND status <> ? AND archived = ?", userID, StatusCompleted, false).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询临期任务: %w", err)
	}

	now := time.Now()
	cautionTasks := make([]Task, 0, len(candidates))
	for _, t := range candidates {
		daysUntil := int(math.Ceil(t.Deadline.Sub(now).Hours() / 24))
		if daysUntil >= 0 && daysUntil <= t.NotifyDays {
			cautionTasks = append(cautionTasks, t)
		}
	}

	sort.Slice(cautionTasks, func(i, j int) bool {
		return cautionTasks[i].Deadline.Before(*cautionTasks[j].Deadline)
	})
	return cautionTasks, nil
}

// UpdateTask 在单个事务内更新任务的元数据和/或推进其进度。
// 进度推进的状态机规则：
//  1. 新的已完成单位数N先被钳制到TotalLevels；
//  2. N不大于当前值时整个更新按无副作用跳过处理（ErrNoForwardProgress）；
//  3. 每个新完成的单位按难度结算XP到所属成长轴；
//  4. 推进到TotalLevels时状态进入completed、首次写入CompletedAt，
//     并额外结算一次性完成奖励（单位XP的一半，向下取整）；
//  5. 否则首次前进会把not_started翻转为in_progress。
//
// completed是单向终态：完成后的任务不可能再满足N大于当前值，奖励因此只会结算一次。
// 任务行更新与XP结算同事务提交，不存在只发生其一的中间状态。
func UpdateTask(id string, userID uint, input UpdateTaskInput) (*Task, error) {
	advancesProgress := input.CompletedLevels != nil

	// XP结算需要串行化进度计数器的读-改-写
	if advancesProgress {
		progress.LockCounters()
		defer progress.UnlockCounters()
	}

	var updated Task
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 在事务中锁定任务行
		var t Task
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return fmt.Errorf("无法锁定任务: %w", err)
		}

		// 2. 元数据更新
		if input.Name != nil {
			t.Name = *input.Name
		}
		if input.Realm != nil {
			t.Realm = *input.Realm
		}
		if input.Deadline != nil {
			t.Deadline = input.Deadline
		}
		if input.NotifyDays != nil {
			t.NotifyDays = *input.NotifyDays
		}
		if input.Archived != nil {
			if *input.Archived && t.Status != StatusCompleted {
				return ErrArchiveIncompleteTask
			}
			t.Archived = *input.Archived
		}

		// 3. 进度推进状态机
		if advancesProgress {
			n := *input.CompletedLevels
			if n > t.TotalLevels {
				// 超出总量的请求视为完成，存储值钳制在TotalLevels
				n = t.TotalLevels
			}
			if n <= t.CompletedLevels {
				return ErrNoForwardProgress
			}

			unitsGained := n - t.CompletedLevels
			xpPerLevel := xp.ForDifficulty(t.Difficulty)
			if _, err := progress.ApplyXpDeltaTx(tx, userID, t.Category, unitsGained*xpPerLevel); err != nil {
				return err
			}

			if n >= t.TotalLevels {
				t.Status = StatusCompleted
				if t.CompletedAt == nil {
					now := time.Now()
					t.CompletedAt = &now
				}
				if _, err := progress.ApplyXpDeltaTx(tx, userID, t.Category, xp.CompletionBonus(t.Difficulty)); err != nil {
					return err
				}
			} else if t.CompletedLevels == 0 && t.Status == StatusNotStarted {
				t.Status = StatusInProgress
			}
			t.CompletedLevels = n
		}

		// 4. 写回任务行
		if err := tx.Save(&t).Error; err != nil {
			return fmt.Errorf("无法更新任务: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后由请求边界失效缓存
	if advancesProgress {
		progress.InvalidateSummaryCache(userID)
	}
	return &updated, nil
}

// DeleteTask 删除用户自己的任务。返回ErrTaskNotFound表示任务不存在。
func DeleteTask(id string, userID uint) error {
	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&Task{})
	if result.Error != nil {
		return fmt.Errorf("无法删除任务: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
