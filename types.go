package courseclient

// Role is a coarse-grained authorization tag assigned to a user account.
// The backend ships a closed set of role codes; unknown codes round-trip
// through the client untouched but never satisfy the enum predicates.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// ParseRole maps a raw role code to a known Role. The second return value
// reports whether the code belongs to the closed set.
func ParseRole(code string) (Role, bool) {
	switch Role(code) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(code), true
	}
	return Role(code), false
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// UserInfo is the authenticated user's profile as returned by the auth
// endpoints and cached by the session store.
type UserInfo struct {
	ID            int64    `json:"id"`
	Username      string   `json:"username"`
	RealName      string   `json:"realName,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	Gender        int      `json:"gender,omitempty"`
	RoleCodes     []Role   `json:"roleCodes"`
	Permissions   []string `json:"permissions,omitempty"`
	LastLoginTime string   `json:"lastLoginTime,omitempty"`
}

// HasRole reports whether the profile carries the given role code.
func (u *UserInfo) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.RoleCodes {
		if r == role {
			return true
		}
	}
	return false
}

// Credentials is the login request payload.
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// AuthTokens is the auth endpoint response carrying token material and,
// on login, the user profile.
type AuthTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"` // "Bearer"
	ExpiresIn    int64     `json:"expiresIn,omitempty"` // seconds
	UserInfo     *UserInfo `json:"userInfo,omitempty"`
}

// Page is one page of a paginated listing, matching the backend's
// {records, total, size, current, pages} page envelope.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int64 `json:"size"`
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
}

// PageQuery holds common pagination parameters for listing endpoints.
type PageQuery struct {
	Current   int
	Size      int
	SortField string
	SortOrder string
	Keyword   string
}

// UserAccount is a managed user record.
type UserAccount struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	RealName   string `json:"realName,omitempty"`
	Gender     int    `json:"gender,omitempty"`
	GenderText string `json:"genderText,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText,omitempty"`
	RoleCodes  []Role `json:"roleCodes,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	RealName  string `json:"realName,omitempty"`
	Gender    int    `json:"gender,omitempty"`
	RoleCodes []Role `json:"roleCodes,omitempty"`
}

// UpdateUserRequest is the payload for updating a user's profile fields.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	RealName string `json:"realName,omitempty"`
	Gender   int    `json:"gender,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ChangePasswordRequest is the payload for a user-initiated password change.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Course is a course record.
type Course struct {
	ID              int64   `json:"id"`
	CourseCode      string  `json:"courseCode"`
	CourseName      string  `json:"courseName"`
	Category        string  `json:"category,omitempty"`
	Credits         float64 `json:"credits,omitempty"`
	Hours           int     `json:"hours,omitempty"`
	Description     string  `json:"description,omitempty"`
	TeacherID       int64   `json:"teacherId,omitempty"`
	TeacherName     string  `json:"teacherName,omitempty"`
	MaxStudents     int     `json:"maxStudents,omitempty"`
	CurrentStudents int     `json:"currentStudents,omitempty"`
	AvailableSpots  int     `json:"availableSpots,omitempty"`
	Semester        string  `json:"semester,omitempty"`
	Status          int     `json:"status"`
	StatusText      string  `json:"statusText,omitempty"`
	CanSelect       bool    `json:"canSelect,omitempty"`
	CreateTime      string  `json:"createTime,omitempty"`
	UpdateTime      string  `json:"updateTime,omitempty"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	CourseCode  string  `json:"courseCode"`
	CourseName  string  `json:"courseName"`
	Category    string  `json:"category,omitempty"`
	Credits     float64 `json:"credits,omitempty"`
	Hours       int     `json:"hours,omitempty"`
	Description string  `json:"description,omitempty"`
	TeacherID   int64   `json:"teacherId,omitempty"`
	MaxStudents int     `json:"maxStudents,omitempty"`
	Semester    string  `json:"semester,omitempty"`
}

// CopyCourseRequest is the payload for copying a course to a new semester.
type CopyCourseRequest struct {
	TargetSemester string `json:"targetSemester"`
}

// Selection is a course-selection (enrollment) record.
type Selection struct {
	ID            int64  `json:"id"`
	StudentID     int64  `json:"studentId"`
	StudentName   string `json:"studentName,omitempty"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	CourseID      int64  `json:"courseId"`
	CourseCode    string `json:"courseCode,omitempty"`
	CourseName    string `json:"courseName,omitempty"`
	Category      string `json:"category,omitempty"`
	Credits       string `json:"credits,omitempty"`
	Semester      string `json:"semester,omitempty"`
	TeacherName   string `json:"teacherName,omitempty"`
	SelectionTime string `json:"selectionTime,omitempty"`
	Status        int    `json:"status"`
	StatusText    string `json:"statusText,omitempty"`
	CreateTime    string `json:"createTime,omitempty"`
	UpdateTime    string `json:"updateTime,omitempty"`
}

// SelectCourseRequest is the payload for enrolling in a course. StudentID is
// optional; the backend derives it from the session for student callers.
type SelectCourseRequest struct {
	CourseID  int64 `json:"courseId"`
	StudentID int64 `json:"studentId,omitempty"`
}

// Grade is a grade record with its component scores.
type Grade struct {
	ID            int64   `json:"id"`
	StudentID     int64   `json:"studentId"`
	StudentName   string  `json:"studentName,omitempty"`
	StudentNumber string  `json:"studentNumber,omitempty"`
	CourseID      int64   `json:"courseId"`
	CourseName    string  `json:"courseName,omitempty"`
	CourseCode    string  `json:"courseCode,omitempty"`
	Credits       string  `json:"credits,omitempty"`
	UsualScore    float64 `json:"usualScore,omitempty"`
	MidtermScore  float64 `json:"midtermScore,omitempty"`
	FinalScore    float64 `json:"finalScore,omitempty"`
	TotalScore    float64 `json:"totalScore,omitempty"`
	GradeLevel    string  `json:"gradeLevel,omitempty"`
	Semester      string  `json:"semester,omitempty"`
	IsPass        bool    `json:"isPass,omitempty"`
	Rank          int     `json:"rank,omitempty"`
	TotalStudents int     `json:"totalStudents,omitempty"`
	CreateTime    string  `json:"createTime,omitempty"`
	UpdateTime    string  `json:"updateTime,omitempty"`
}

// GradeInput is the payload for recording or updating a grade.
type GradeInput struct {
	ID           int64   `json:"id,omitempty"`
	StudentID    int64   `json:"studentId"`
	CourseID     int64   `json:"courseId"`
	UsualScore   float64 `json:"usualScore,omitempty"`
	MidtermScore float64 `json:"midtermScore,omitempty"`
	FinalScore   float64 `json:"finalScore,omitempty"`
	TotalScore   float64 `json:"totalScore,omitempty"`
	GradeLevel   string  `json:"gradeLevel,omitempty"`
	Semester     string  `json:"semester,omitempty"`
}

// GradeStatistics aggregates the grade outcomes of one course.
type GradeStatistics struct {
	CourseID          int64   `json:"courseId"`
	CourseName        string  `json:"courseName,omitempty"`
	CourseCode        string  `json:"courseCode,omitempty"`
	Semester          string  `json:"semester,omitempty"`
	TotalStudents     int     `json:"totalStudents"`
	GradedStudents    int     `json:"gradedStudents"`
	PassedStudents    int     `json:"passedStudents"`
	FailedStudents    int     `json:"failedStudents"`
	PassRate          float64 `json:"passRate"`
	MaxScore          float64 `json:"maxScore"`
	MinScore          float64 `json:"minScore"`
	AvgScore          float64 `json:"avgScore"`
	MedianScore       float64 `json:"medianScore"`
	StandardDeviation float64 `json:"standardDeviation"`
	GradeACount       int     `json:"gradeACount"`
	GradeBCount       int     `json:"gradeBCount"`
	GradeCCount       int     `json:"gradeCCount"`
	GradeDCount       int     `json:"gradeDCount"`
	GradeFCount       int     `json:"gradeFCount"`
	ExcellentRate     float64 `json:"excellentRate"`
	GoodRate          float64 `json:"goodRate"`
}

// StudentRanking is a student's rank within a semester.
type StudentRanking struct {
	StudentID     int64   `json:"studentId"`
	StudentName   string  `json:"studentName,omitempty"`
	AverageScore  float64 `json:"averageScore"`
	Rank          int     `json:"rank"`
	TotalStudents int     `json:"totalStudents"`
	Semester      string  `json:"semester,omitempty"`
}

// Announcement is an announcement record.
type Announcement struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content,omitempty"`
	Type           int    `json:"type,omitempty"`
	TypeText       string `json:"typeText,omitempty"`
	Priority       int    `json:"priority,omitempty"`
	PriorityText   string `json:"priorityText,omitempty"`
	PublisherID    int64  `json:"publisherId,omitempty"`
	PublisherName  string `json:"publisherName,omitempty"`
	TargetType     int    `json:"targetType,omitempty"`
	TargetTypeText string `json:"targetTypeText,omitempty"`
	CourseID       int64  `json:"courseId,omitempty"`
	CourseName     string `json:"courseName,omitempty"`
	IsTop          int    `json:"isTop,omitempty"`
	Status         int    `json:"status"`
	StatusText     string `json:"statusText,omitempty"`
	PublishTime    string `json:"publishTime,omitempty"`
	ExpireTime     string `json:"expireTime,omitempty"`
	ReadCount      int    `json:"readCount,omitempty"`
	AttachmentURL  string `json:"attachmentUrl,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
	IsRead         bool   `json:"isRead,omitempty"`
	IsExpired      bool   `json:"isExpired,omitempty"`
	CreateTime     string `json:"createTime,omitempty"`
	UpdateTime     string `json:"updateTime,omitempty"`
}

// AnnouncementInput is the payload for publishing or updating an
// announcement. A zero ID creates a new announcement.
type AnnouncementInput struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Type           int    `json:"type,omitempty"`
	Priority       int    `json:"priority,omitempty"`
	TargetType     int    `json:"targetType,omitempty"`
	CourseID       int64  `json:"courseId,omitempty"`
	IsTop          int    `json:"isTop,omitempty"`
	Status         int    `json:"status,omitempty"`
	PublishTime    string `json:"publishTime,omitempty"`
	ExpireTime     string `json:"expireTime,omitempty"`
	AttachmentURL  string `json:"attachmentUrl,omitempty"`
	AttachmentName string `json:"attachmentName,omitempty"`
}

// UserTotals aggregates user counts for the statistics overview.
type UserTotals struct {
	TotalUsers        int     `json:"totalUsers"`
	StudentCount      int     `json:"studentCount"`
	TeacherCount      int     `json:"teacherCount"`
	AdminCount        int     `json:"adminCount"`
	ActiveUsers       int     `json:"activeUsers"`
	NewUsersThisMonth int     `json:"newUsersThisMonth"`
	ActiveRate        float64 `json:"activeRate"`
}

// CourseTotals aggregates course counts for the statistics overview.
type CourseTotals struct {
	TotalCourses           int     `json:"totalCourses"`
	OpenCourses            int     `json:"openCourses"`
	ClosedCourses          int     `json:"closedCourses"`
	RequiredCourses        int     `json:"requiredCourses"`
	ElectiveCourses        int     `json:"electiveCourses"`
	AvgStudentsPerCourse   float64 `json:"avgStudentsPerCourse"`
	TotalSelections        int     `json:"totalSelections"`
	NewCoursesThisSemester int     `json:"newCoursesThisSemester"`
}

// GradeTotals aggregates grade counts for the statistics overview.
type GradeTotals struct {
	TotalGrades   int     `json:"totalGrades"`
	GradedCount   int     `json:"gradedCount"`
	UngradedCount int     `json:"ungradedCount"`
	AverageScore  float64 `json:"averageScore"`
	PassedCount   int     `json:"passedCount"`
	FailedCount   int     `json:"failedCount"`
	PassRate      float64 `json:"passRate"`
	ExcellentRate float64 `json:"excellentRate"`
}

// AnnouncementTotals aggregates announcement counts for the statistics
// overview and the announcement statistics endpoint.
type AnnouncementTotals struct {
	TotalAnnouncements int     `json:"totalAnnouncements"`
	PublishedCount     int     `json:"publishedCount"`
	DraftCount         int     `json:"draftCount"`
	TopCount           int     `json:"topCount"`
	PublishedThisMonth int     `json:"publishedThisMonth"`
	TotalReadCount     int     `json:"totalReadCount"`
	AvgReadCount       float64 `json:"avgReadCount"`
}

// StatisticsOverview is the combined aggregate across all domains.
type StatisticsOverview struct {
	UserStatistics         UserTotals         `json:"userStatistics"`
	CourseStatistics       CourseTotals       `json:"courseStatistics"`
	GradeStatistics        GradeTotals        `json:"gradeStatistics"`
	AnnouncementStatistics AnnouncementTotals `json:"announcementStatistics"`
}

// TrendPoint is one point of a time-series trend.
type TrendPoint struct {
	Date       string  `json:"date"`
	Value      int     `json:"value"`
	Growth     int     `json:"growth,omitempty"`
	GrowthRate float64 `json:"growthRate,omitempty"`
	Label      string  `json:"label,omitempty"`
}

// TrendData is a time-series trend with growth metadata.
type TrendData struct {
	DataType       string       `json:"dataType,omitempty"`
	TimeRange      string       `json:"timeRange,omitempty"`
	Points         []TrendPoint `json:"points"`
	GrowthRate     float64      `json:"growthRate,omitempty"`
	TrendDirection string       `json:"trendDirection,omitempty"`
}

// DataSeries is one named series of a chart.
type DataSeries struct {
	Name  string `json:"name"`
	Data  []any  `json:"data"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
}

// ChartData is a chart-ready data set as produced by the statistics
// endpoints.
type ChartData struct {
	Title  string       `json:"title,omitempty"`
	Type   string       `json:"type,omitempty"`
	Labels []string     `json:"labels"`
	Series []DataSeries `json:"series"`
}

// CourseRanking is one entry of the popular-courses ranking.
type CourseRanking struct {
	CourseID       int64  `json:"courseId"`
	CourseCode     string `json:"courseCode,omitempty"`
	CourseName     string `json:"courseName"`
	TeacherName    string `json:"teacherName,omitempty"`
	Category       string `json:"category,omitempty"`
	Semester       string `json:"semester,omitempty"`
	SelectionCount int    `json:"selectionCount"`
}

// File is a binary export returned by download endpoints.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
