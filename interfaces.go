package courseclient

import "context"

// AuthService wraps the authentication endpoints.
// Implementations: rest/ (HTTP backend), fake/ (testing).
type AuthService interface {
	// Login exchanges credentials for token material and the user profile.
	Login(ctx context.Context, creds Credentials) (*AuthTokens, error)

	// Logout invalidates the current session server-side.
	Logout(ctx context.Context) error

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)

	// CurrentUser returns the authenticated user's profile.
	CurrentUser(ctx context.Context) (*UserInfo, error)

	// Check validates the current access token against the server.
	Check(ctx context.Context) error
}

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserAccount, error)
	Get(ctx context.Context, id int64) (*UserAccount, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserAccount, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageQuery) (*Page[UserAccount], error)

	// ChangePassword changes a user's own password.
	ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error

	// ResetPassword sets a new password administratively.
	ResetPassword(ctx context.Context, id int64, newPassword string) error

	UpdateStatus(ctx context.Context, id int64, status int) error
	ListByRole(ctx context.Context, role Role, page PageQuery) (*Page[UserAccount], error)

	// CheckUsername reports whether a username is free. excludeID skips one
	// account, for rename checks; pass 0 to check all accounts.
	CheckUsername(ctx context.Context, username string, excludeID int64) (bool, error)
}

// CourseService manages courses.
type CourseService interface {
	Create(ctx context.Context, req CreateCourseRequest) (*Course, error)
	Get(ctx context.Context, id int64) (*Course, error)
	Update(ctx context.Context, id int64, req CreateCourseRequest) (*Course, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageQuery) (*Page[Course], error)

	ListBySemester(ctx context.Context, semester string, page PageQuery) (*Page[Course], error)
	ListAvailable(ctx context.Context, page PageQuery) (*Page[Course], error)
	ListByTeacher(ctx context.Context, teacherID int64, page PageQuery) (*Page[Course], error)

	UpdateStatus(ctx context.Context, id int64, status int) error

	// Copy clones a course into another semester.
	Copy(ctx context.Context, id int64, req CopyCourseRequest) (*Course, error)

	Categories(ctx context.Context) ([]string, error)
	CheckCode(ctx context.Context, courseCode string, excludeID int64) (bool, error)
	TeacherCourseCount(ctx context.Context, teacherID int64) (int64, error)
}

// SelectionService manages course selections (enrollment).
type SelectionService interface {
	Select(ctx context.Context, req SelectCourseRequest) (*Selection, error)

	// Drop cancels an enrollment. studentID is optional; pass 0 for the
	// session's own student.
	Drop(ctx context.Context, courseID, studentID int64) error

	ListByStudent(ctx context.Context, studentID int64, page PageQuery) (*Page[Selection], error)
	ListMine(ctx context.Context, page PageQuery) (*Page[Selection], error)
	ListByCourse(ctx context.Context, courseID int64, page PageQuery) (*Page[Selection], error)
	List(ctx context.Context, page PageQuery) (*Page[Selection], error)

	// CanSelect reports whether the student may enroll in the course.
	CanSelect(ctx context.Context, courseID, studentID int64) (bool, error)

	CountByStudent(ctx context.Context, studentID int64, semester string) (int64, error)
	CountByCourse(ctx context.Context, courseID int64, semester string) (int64, error)
}

// GradeService manages grades and their aggregates.
type GradeService interface {
	// Save records a grade, or updates it when the input carries an ID.
	Save(ctx context.Context, input GradeInput) (*Grade, error)
	BatchSave(ctx context.Context, inputs []GradeInput) ([]Grade, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Grade, error)

	ListByStudent(ctx context.Context, studentID int64, semester string) ([]Grade, error)
	ListMine(ctx context.Context, semester string) ([]Grade, error)
	ListByCourse(ctx context.Context, courseID int64, page PageQuery) (*Page[Grade], error)
	List(ctx context.Context, page PageQuery) (*Page[Grade], error)

	CourseStatistics(ctx context.Context, courseID int64, semester string) (*GradeStatistics, error)
	StudentAverage(ctx context.Context, studentID int64, semester string) (float64, error)

	// Distribution returns the grade-level distribution (level code → count).
	Distribution(ctx context.Context, courseID int64, semester string) (map[string]int, error)

	Ranking(ctx context.Context, studentID int64, semester string) (*StudentRanking, error)
}

// AnnouncementService manages announcements.
type AnnouncementService interface {
	// Save publishes a new announcement, or updates it when the input
	// carries an ID.
	Save(ctx context.Context, input AnnouncementInput) (*Announcement, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Announcement, error)

	// ListManaged pages all announcements for the management screen.
	ListManaged(ctx context.Context, page PageQuery) (*Page[Announcement], error)

	// ListVisible pages the announcements visible to the current user.
	ListVisible(ctx context.Context, page PageQuery) (*Page[Announcement], error)

	ListTop(ctx context.Context, limit int) ([]Announcement, error)
	ListLatest(ctx context.Context, limit int) ([]Announcement, error)

	Publish(ctx context.Context, id int64) error
	Withdraw(ctx context.Context, id int64) error
	SetTop(ctx context.Context, id int64, top bool) error

	Statistics(ctx context.Context) (*AnnouncementTotals, error)

	BatchDelete(ctx context.Context, ids []int64) error
	BatchPublish(ctx context.Context, ids []int64) error
}

// StatisticsService exposes the reporting aggregates, chart data, rankings
// and report exports.
type StatisticsService interface {
	Overview(ctx context.Context) (*StatisticsOverview, error)
	Users(ctx context.Context) (*UserTotals, error)
	Courses(ctx context.Context) (*CourseTotals, error)
	Grades(ctx context.Context) (*GradeTotals, error)
	Announcements(ctx context.Context) (*AnnouncementTotals, error)

	UserGrowthTrend(ctx context.Context, timeRange string) (*TrendData, error)
	SelectionTrend(ctx context.Context, timeRange string) (*TrendData, error)

	GradeDistributionChart(ctx context.Context, semester string) (*ChartData, error)
	CourseCategoryChart(ctx context.Context) (*ChartData, error)
	UserRoleChart(ctx context.Context) (*ChartData, error)
	AnnouncementTypeChart(ctx context.Context) (*ChartData, error)
	MonthlyActivityChart(ctx context.Context, months int) (*ChartData, error)

	PopularCourses(ctx context.Context, limit int) ([]CourseRanking, error)
	TopStudents(ctx context.Context, limit int) ([]StudentRanking, error)

	TeacherCourseStatistics(ctx context.Context, semester string) ([]GradeStatistics, error)
	SemesterComparison(ctx context.Context, semesters []string) (*ChartData, error)
	SystemUsage(ctx context.Context, timeRange string) (map[string]any, error)

	// Exports run with the extended download timeout and bypass envelope
	// unwrapping.
	ExportOverview(ctx context.Context) (*File, error)
	ExportUsers(ctx context.Context, timeRange string) (*File, error)
	ExportCourses(ctx context.Context, semester string) (*File, error)
	ExportGrades(ctx context.Context, semester string) (*File, error)
	ExportAnnouncements(ctx context.Context, timeRange string) (*File, error)
}

// DashboardService exposes the landing-page aggregates.
type DashboardService interface {
	Stats(ctx context.Context) (map[string]any, error)
	UserRoleStats(ctx context.Context) (*ChartData, error)
}

// TokenSource supplies the bearer token attached to outgoing requests.
// The session store is the canonical implementation.
type TokenSource interface {
	AccessToken() string
}

// SessionManager is the session store surface consumed by the navigation
// guard and by embedding servers. Implemented by session.Store.
type SessionManager interface {
	TokenSource

	IsLoggedIn() bool
	CurrentUser() *UserInfo
	HasRole(role Role) bool
	HasPermission(code string) bool

	// CheckAuth validates the session, attempting at most one token refresh
	// before giving up and clearing the session.
	CheckAuth(ctx context.Context) bool
}

// Progress receives request/navigation lifecycle signals, standing in for a
// visual progress indicator. Implementations must tolerate concurrent use.
type Progress interface {
	Start()
	Done()
}

// NopProgress discards all progress signals.
type NopProgress struct{}

func (NopProgress) Start() {}
func (NopProgress) Done()  {}
