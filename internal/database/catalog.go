package database

import "github.com/go-while/go-medhub/internal/models"

// Catalog is the fixed data set served by every store
type Catalog struct {
	Hospitals   []*models.Hospital
	Departments []*models.Department
	Projects    []*models.Project
}

// NewCatalog returns a fresh copy of the built-in mock data
func NewCatalog() *Catalog {
	return &Catalog{
		Hospitals: []*models.Hospital{
			{
				ID:              1,
				Name:            "北京协和医院",
				Description:     "国家卫生健康委直属的三级甲等综合医院，是国家级医学中心和疑难重症诊治指导中心。",
				Level:           "三甲",
				Location:        "北京市东城区",
				SubmitDate:      "2024-01-15",
				DepartmentCount: 45,
				ProjectCount:    128,
			},
			{
				ID:              2,
				Name:            "上海交通大学医学院附属瑞金医院",
				Description:     "集医疗、教学、科研为一体的三级甲等综合性医院，在血液学、内分泌等领域处于国际先进水平。",
				Level:           "三甲",
				Location:        "上海市黄浦区",
				SubmitDate:      "2024-01-20",
				DepartmentCount: 38,
				ProjectCount:    95,
			},
			{
				ID:              3,
				Name:            "四川大学华西医院",
				Description:     "西部地区重要的医疗中心，在肿瘤学、神经外科等专业领域具有显著优势。",
				Level:           "三甲",
				Location:        "四川省成都市",
				SubmitDate:      "2024-01-25",
				DepartmentCount: 42,
				ProjectCount:    87,
			},
			{
				ID:              4,
				Name:            "中山大学附属第一医院",
				Description:     "华南地区医疗、教学、科研和预防保健中心，多个学科在国内外享有盛誉。",
				Level:           "三甲",
				Location:        "广东省广州市",
				SubmitDate:      "2024-02-01",
				DepartmentCount: 40,
				ProjectCount:    76,
			},
		},
		Departments: []*models.Department{
			{
				ID:           1,
				Name:         "心血管内科",
				Description:  "专业从事心血管疾病的诊断、治疗和研究，拥有先进的医疗设备和经验丰富的医疗团队。",
				HospitalID:   1,
				HospitalName: "北京协和医院",
				Director:     "张主任",
				MemberCount:  25,
				ProjectCount: 12,
				SubmitDate:   "2024-01-16",
				Tags:         []string{"心脏病", "高血压", "心律失常"},
			},
			{
				ID:           2,
				Name:         "神经外科",
				Description:  "致力于颅脑疾病和脊髓疾病的外科治疗，在脑肿瘤、脑血管病等领域具有丰富经验。",
				HospitalID:   1,
				HospitalName: "北京协和医院",
				Director:     "李主任",
				MemberCount:  18,
				ProjectCount: 8,
				SubmitDate:   "2024-01-18",
				Tags:         []string{"脑肿瘤", "脑血管病", "脊髓疾病"},
			},
			{
				ID:           3,
				Name:         "血液科",
				Description:  "专业治疗各种血液系统疾病，在白血病、淋巴瘤等恶性血液病治疗方面处于国内领先水平。",
				HospitalID:   2,
				HospitalName: "上海交通大学医学院附属瑞金医院",
				Director:     "王主任",
				MemberCount:  22,
				ProjectCount: 15,
				SubmitDate:   "2024-01-22",
				Tags:         []string{"白血病", "淋巴瘤", "血液病"},
			},
		},
		Projects: []*models.Project{
			{
				ID:             1,
				Title:          "心血管疾病基因治疗研究",
				Description:    "探索基因治疗在心血管疾病中的应用，开发新的治疗方法和药物靶点。",
				Leader:         "张教授",
				DepartmentID:   1,
				DepartmentName: "心血管内科",
				HospitalID:     1,
				HospitalName:   "北京协和医院",
				Status:         models.ProjectStatusRecruiting,
				MemberCount:    8,
				MaxMembers:     12,
				StartDate:      "2024-03-01",
				EndDate:        "2026-02-28",
				Tags:           []string{"基因治疗", "心血管", "分子生物学"},
				CanJoin:        true,
				IsJoined:       false,
			},
			{
				ID:             2,
				Title:          "脑肿瘤精准治疗临床研究",
				Description:    "基于分子标记物的脑肿瘤个性化治疗方案研究，提高治疗效果和患者生存质量。",
				Leader:         "李教授",
				DepartmentID:   2,
				DepartmentName: "神经外科",
				HospitalID:     1,
				HospitalName:   "北京协和医院",
				Status:         models.ProjectStatusOngoing,
				MemberCount:    6,
				MaxMembers:     10,
				StartDate:      "2024-01-15",
				EndDate:        "2025-12-31",
				Tags:           []string{"脑肿瘤", "精准医学", "临床研究"},
				CanJoin:        true,
				IsJoined:       false,
			},
		},
	}
}
