package fake

import (
	"context"
	"testing"

	courseclient "github.com/air846/course-client"
)

func TestLogin_IssuesTokensAndProfile(t *testing.T) {
	c := NewClient(WithAccount("alice", "pw", courseclient.RoleStudent))

	tokens, err := c.Auth().Login(context.Background(), courseclient.Credentials{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("login should issue both tokens")
	}
	if tokens.UserInfo == nil || tokens.UserInfo.Username != "alice" {
		t.Errorf("UserInfo = %+v", tokens.UserInfo)
	}
	if !tokens.UserInfo.HasRole(courseclient.RoleStudent) {
		t.Error("profile should carry the configured role")
	}
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	c := NewClient(WithAccount("alice", "pw"))

	if _, err := c.Auth().Login(context.Background(), courseclient.Credentials{Username: "alice", Password: "nope"}); err == nil {
		t.Fatal("Login() expected error for wrong password")
	}
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	c := NewClient(WithAccount("alice", "pw"))
	auth := c.Auth()

	tokens, err := auth.Login(context.Background(), courseclient.Credentials{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	refreshed, err := auth.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.AccessToken == tokens.AccessToken {
		t.Error("refresh should issue a fresh access token")
	}
}

func TestRevokeAll_InvalidatesRefreshTokens(t *testing.T) {
	auth := NewAuth(WithAccount("alice", "pw"))

	tokens, err := auth.Login(context.Background(), courseclient.Credentials{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	RevokeAll(auth)

	if err := auth.Check(context.Background()); err == nil {
		t.Error("Check() should fail after RevokeAll")
	}
	if _, err := auth.Refresh(context.Background(), tokens.RefreshToken); err == nil {
		t.Error("Refresh() should fail after RevokeAll")
	}
}

func TestSelections_FullCourseRejectsEnrollment(t *testing.T) {
	c := NewClient(
		WithAccount("amy", "pw", courseclient.RoleStudent),
		WithCourse(courseclient.Course{
			CourseCode:  "CS101",
			CourseName:  "Intro",
			MaxStudents: 1,
			Status:      1,
		}),
	)
	ctx := context.Background()

	courses, err := c.Courses().List(ctx, courseclient.PageQuery{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	courseID := courses.Records[0].ID

	if _, err := c.Selections().Select(ctx, courseclient.SelectCourseRequest{CourseID: courseID, StudentID: 100}); err != nil {
		t.Fatalf("first Select() error: %v", err)
	}
	if _, err := c.Selections().Select(ctx, courseclient.SelectCourseRequest{CourseID: courseID, StudentID: 101}); err == nil {
		t.Error("Select() should reject enrollment into a full course")
	}

	ok, err := c.Selections().CanSelect(ctx, courseID, 102)
	if err != nil {
		t.Fatalf("CanSelect() error: %v", err)
	}
	if ok {
		t.Error("CanSelect() = true for a full course")
	}
}

func TestGrades_SaveComputesTotalAndPass(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	grade, err := c.Grades().Save(ctx, courseclient.GradeInput{
		StudentID:    1,
		CourseID:     2,
		UsualScore:   80,
		MidtermScore: 70,
		FinalScore:   90,
		Semester:     "2024-1",
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if grade.TotalScore != 81 {
		t.Errorf("TotalScore = %v, want 81", grade.TotalScore)
	}
	if !grade.IsPass {
		t.Error("IsPass = false for a passing total")
	}
}

func TestAnnouncements_PublishLifecycle(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	svc := c.Announcements()

	a, err := svc.Save(ctx, courseclient.AnnouncementInput{Title: "Welcome", Content: "hello"})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	visible, _ := svc.ListVisible(ctx, courseclient.PageQuery{})
	if visible.Total != 0 {
		t.Error("drafts must not be visible")
	}

	if err := svc.Publish(ctx, a.ID); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	visible, _ = svc.ListVisible(ctx, courseclient.PageQuery{})
	if visible.Total != 1 {
		t.Errorf("visible total = %d, want 1", visible.Total)
	}

	if err := svc.Withdraw(ctx, a.ID); err != nil {
		t.Fatalf("Withdraw() error: %v", err)
	}
	visible, _ = svc.ListVisible(ctx, courseclient.PageQuery{})
	if visible.Total != 0 {
		t.Error("withdrawn announcements must not be visible")
	}
}

func TestStatistics_OverviewAggregates(t *testing.T) {
	c := NewClient(
		WithAccount("t1", "pw", courseclient.RoleTeacher),
		WithAccount("s1", "pw", courseclient.RoleStudent),
		WithAccount("s2", "pw", courseclient.RoleStudent),
		WithCourse(courseclient.Course{CourseCode: "CS101", CourseName: "Intro", Status: 1}),
	)

	overview, err := c.Statistics().Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}
	if overview.UserStatistics.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", overview.UserStatistics.TotalUsers)
	}
	if overview.UserStatistics.StudentCount != 2 {
		t.Errorf("StudentCount = %d, want 2", overview.UserStatistics.StudentCount)
	}
	if overview.CourseStatistics.TotalCourses != 1 {
		t.Errorf("TotalCourses = %d, want 1", overview.CourseStatistics.TotalCourses)
	}
}

func TestPaging_SlicesRecords(t *testing.T) {
	opts := make([]Option, 0, 25)
	for i := 0; i < 25; i++ {
		opts = append(opts, WithCourse(courseclient.Course{
			CourseCode: courseCode(i),
			CourseName: "Course",
			Status:     1,
		}))
	}
	c := NewClient(opts...)

	p, err := c.Courses().List(context.Background(), courseclient.PageQuery{Current: 2, Size: 10})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if p.Total != 25 || p.Pages != 3 || p.Current != 2 {
		t.Errorf("page = %+v", p)
	}
	if len(p.Records) != 10 {
		t.Errorf("records = %d, want 10", len(p.Records))
	}
}

func courseCode(i int) string {
	return string(rune('A'+i/10)) + string(rune('0'+i%10))
}
