package catalog

// registerDefaults registers the built-in capacity-scheduler property set.
func (c *Catalog) registerDefaults() {
	defs := []Definition{
		{Key: "capacity", DisplayName: "Capacity", Type: TypeCapacity, DefaultValue: "0"},
		{Key: "maximum-capacity", DisplayName: "Maximum Capacity", Type: TypeCapacity, DefaultValue: "100"},
		{Key: "state", DisplayName: "State", Type: TypeEnum, DefaultValue: "RUNNING"},
		{Key: "queues", DisplayName: "Child Queues", Type: TypeString},
		{Key: "ordering-policy", DisplayName: "Ordering Policy", Type: TypeEnum, DefaultValue: "fifo"},
		{Key: "user-limit-factor", DisplayName: "User Limit Factor", Type: TypeNumber, DefaultValue: "1"},
		{Key: "minimum-user-limit-percent", DisplayName: "Minimum User Limit Percent", Type: TypeNumber, DefaultValue: "100"},
		{Key: "maximum-am-resource-percent", DisplayName: "Maximum AM Resource Percent", Type: TypeNumber, DefaultValue: "0.1"},
		{Key: "maximum-applications", DisplayName: "Maximum Applications", Type: TypeNumber},
		{Key: "max-parallel-apps", DisplayName: "Maximum Parallel Apps", Type: TypeNumber},
		{Key: "priority", DisplayName: "Priority", Type: TypeNumber, DefaultValue: "0"},
		{Key: "default-application-priority", DisplayName: "Default Application Priority", Type: TypeNumber, DefaultValue: "0"},
		{Key: "disable_preemption", DisplayName: "Disable Preemption", Type: TypeBool, DefaultValue: "false"},
		{Key: "intra-queue-preemption.disable_preemption", DisplayName: "Disable Intra-Queue Preemption", Type: TypeBool, DefaultValue: "false"},
		{Key: "acl_submit_applications", DisplayName: "Submit ACL", Type: TypeACL, DefaultValue: "*"},
		{Key: "acl_administer_queue", DisplayName: "Administer ACL", Type: TypeACL, DefaultValue: "*"},
		{Key: "accessible-node-labels", DisplayName: "Accessible Node Labels", Type: TypeString, DefaultValue: "*"},
		{Key: "default-node-label-expression", DisplayName: "Default Node Label Expression", Type: TypeString},
		{Key: "maximum-allocation-mb", DisplayName: "Maximum Allocation (MB)", Type: TypeNumber},
		{Key: "maximum-allocation-vcores", DisplayName: "Maximum Allocation (vcores)", Type: TypeNumber},

		// Auto queue creation. These local names span multiple dot
		// segments and need longest-match key splitting.
		{Key: "auto-create-child-queue.enabled", DisplayName: "Auto Create Child Queues (legacy)", Type: TypeBool, DefaultValue: "false"},
		{Key: "auto-queue-creation-v2.enabled", DisplayName: "Auto Create Child Queues", Type: TypeBool, DefaultValue: "false"},
		{Key: "auto-queue-creation-v2.max-queues", DisplayName: "Auto Create Queue Limit", Type: TypeNumber, DefaultValue: "1000"},
		{Key: "leaf-queue-template.capacity", DisplayName: "Template Capacity", Type: TypeCapacity},
		{Key: "leaf-queue-template.maximum-capacity", DisplayName: "Template Maximum Capacity", Type: TypeCapacity},
		{Key: "leaf-queue-template.ordering-policy", DisplayName: "Template Ordering Policy", Type: TypeEnum},
		{Key: "leaf-queue-template.user-limit-factor", DisplayName: "Template User Limit Factor", Type: TypeNumber},
	}

	for _, def := range defs {
		c.MustRegister(def)
	}
}
